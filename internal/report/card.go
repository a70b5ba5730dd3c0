package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/scoring"
)

const (
	cardWidth  = 1200
	cardHeight = 630
)

// loadCardFaces parses the configured TrueType font. An empty path keeps gg's
// built-in bitmap face.
func loadCardFaces(path string) (*cardFaces, error) {
	if path == "" {
		return &cardFaces{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &cardFaces{
		title: truetype.NewFace(f, &truetype.Options{Size: 44}),
		score: truetype.NewFace(f, &truetype.Options{Size: 72}),
		label: truetype.NewFace(f, &truetype.Options{Size: 26}),
	}, nil
}

func useFace(dc *gg.Context, face font.Face) {
	if face != nil {
		dc.SetFontFace(face)
	}
}

// writeCard draws a share image: overall score ring on the left, one bar per
// section on the right.
func writeCard(w io.Writer, results domain.Results, pal palette, faces *cardFaces) error {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(pal.primary)
	dc.DrawRectangle(0, 0, cardWidth, 110)
	dc.Fill()
	useFace(dc, faces.title)
	dc.SetColor(color.White)
	dc.DrawStringAnchored("RAG Assessment Results", 60, 55, 0, 0.5)

	pct := scoring.Percentage(results.OverallScore, results.OverallMaxScore)
	cx, cy, radius := 270.0, 370.0, 160.0
	dc.SetLineWidth(28)
	dc.SetColor(pal.neutral)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()
	if pct > 0 {
		start := -math.Pi / 2
		dc.SetColor(pal.band(scoring.ScoreBand(pct)))
		dc.DrawArc(cx, cy, radius, start, start+2*math.Pi*float64(pct)/100)
		dc.Stroke()
	}
	useFace(dc, faces.score)
	dc.SetColor(pal.text)
	dc.DrawStringAnchored(fmt.Sprintf("%d%%", pct), cx, cy-12, 0.5, 0.5)
	useFace(dc, faces.label)
	dc.SetColor(pal.muted)
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d", results.OverallScore, results.OverallMaxScore), cx, cy+50, 0.5, 0.5)

	const barX, barW, barH = 520.0, 600.0, 26.0
	for i, s := range results.SectionScores {
		y := 170 + float64(i)*105
		spct := scoring.Percentage(s.Score, s.MaxScore)
		dc.SetColor(pal.text)
		dc.DrawStringAnchored(fmt.Sprintf("%s  %d%%", s.SectionTitle, spct), barX, y, 0, 0)
		dc.SetColor(pal.neutral)
		dc.DrawRoundedRectangle(barX, y+14, barW, barH, barH/2)
		dc.Fill()
		if spct > 0 {
			dc.SetColor(pal.band(scoring.ScoreBand(spct)))
			dc.DrawRoundedRectangle(barX, y+14, barW*float64(spct)/100, barH, barH/2)
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
