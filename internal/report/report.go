// Package report renders assessment results as plain text, PDF and a PNG share
// card. The PDF and image machinery is set up on first use only.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/logger"
)

// Format selects a renderer.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
	FormatPNG  Format = "png"
)

// ParseFormat accepts a format name, defaulting to PDF when empty.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, raw)
}

func (f Format) contentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPNG:
		return "image/png"
	default:
		return "application/pdf"
	}
}

func (f Format) extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Document is a rendered, downloadable report.
type Document struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}

// Filename is the download name for a report completed on the results' date.
func Filename(results domain.Results, f Format) string {
	return fmt.Sprintf("RAG-Assessment-Results-%s.%s", results.CompletedAt.Format("2006-01-02"), f.extension())
}

// Options configures the renderers.
type Options struct {
	// FontPath optionally points at a TrueType font for the share card.
	FontPath string
}

// Service renders reports. It is safe for concurrent use.
type Service struct {
	opts Options
	log  *logger.Logger

	once    sync.Once
	faces   *cardFaces
	initErr error
	inits   int
}

func NewService(opts Options, log *logger.Logger) *Service {
	return &Service{opts: opts, log: log.With("component", "report")}
}

// Render produces a report document for results.
func (s *Service) Render(ctx context.Context, f Format, results domain.Results, brand domain.BrandColors) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var buf bytes.Buffer
	switch f {
	case FormatText:
		buf.WriteString(Text(results))
	case FormatPDF, FormatPNG:
		faces, err := s.setup()
		if err != nil {
			return Document{}, err
		}
		pal := newPalette(brand)
		if f == FormatPDF {
			err = writePDF(&buf, results, pal)
		} else {
			err = writeCard(&buf, results, pal, faces)
		}
		if err != nil {
			return Document{}, err
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}

	return Document{
		Format:      f,
		Filename:    Filename(results, f),
		ContentType: f.contentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (s *Service) setup() (*cardFaces, error) {
	s.once.Do(func() {
		s.inits++
		s.faces, s.initErr = loadCardFaces(s.opts.FontPath)
		if s.initErr != nil {
			s.log.Error("report renderer setup failed", "font", s.opts.FontPath, "error", s.initErr)
			return
		}
		s.log.Debug("report renderer ready", "font", s.opts.FontPath)
	})
	return s.faces, s.initErr
}

type cardFaces struct {
	title font.Face
	score font.Face
	label font.Face
}
