package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/scoring"
)

const pdfFont = "Helvetica"

func writePDF(w io.Writer, results domain.Results, pal palette) error {
	doc := buildPDF(results, pal)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// buildPDF lays out page 1 as the overall summary and one further page per
// section carrying its full recommendation list.
func buildPDF(results domain.Results, pal palette) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 22)
	pdf.SetTitle("RAG Assessment Results", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetTextColor(rgb(pal.muted))
		pdf.SetDrawColor(rgb(pal.neutral))
		pdf.CellFormat(0, 8, fmt.Sprintf("RAG Assessment Quiz - Page %d", pdf.PageNo()), "T", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdfHeader(pdf, pal, tr("RAG Assessment Results"), "Generated on "+results.CompletedAt.Format(dateLayout))

	overallPct := scoring.Percentage(results.OverallScore, results.OverallMaxScore)
	pdf.SetFont(pdfFont, "B", 40)
	pdf.SetTextColor(rgb(pal.primary))
	pdf.CellFormat(0, 18, fmt.Sprintf("%d", results.OverallScore), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 13)
	pdf.SetTextColor(rgb(pal.muted))
	pdf.CellFormat(0, 8, fmt.Sprintf("out of %d points (%d%%)", results.OverallMaxScore, overallPct), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdfInsight(pdf, pal, tr(results.OverallInsight))

	pdfHeading(pdf, pal, "Section Breakdown")
	for _, s := range results.SectionScores {
		pct := scoring.Percentage(s.Score, s.MaxScore)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.SetTextColor(rgb(pal.text))
		pdf.CellFormat(0, 6, tr(s.SectionTitle), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		pdf.SetTextColor(rgb(pal.band(scoring.ScoreBand(pct))))
		pdf.CellFormat(0, 5, fmt.Sprintf("Score: %d/%d (%d%%)", s.Score, s.MaxScore, pct), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetTextColor(rgb(pal.text))
		pdf.MultiCell(0, 4.5, tr(s.Insight), "", "L", false)
		pdf.Ln(3)
	}

	for _, s := range results.SectionScores {
		pct := scoring.Percentage(s.Score, s.MaxScore)
		pdf.AddPage()
		pdfHeader(pdf, pal, tr(fmt.Sprintf("Section %d: %s", s.SectionID, s.SectionTitle)),
			fmt.Sprintf("Score: %d/%d (%d%%)", s.Score, s.MaxScore, pct))
		pdfInsight(pdf, pal, tr(s.Insight))
		pdfHeading(pdf, pal, "Recommendations")
		pdf.SetFont(pdfFont, "", 10)
		pdf.SetTextColor(rgb(pal.text))
		for i, tip := range s.Tips {
			pdf.SetX(20)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, tip)), "", "L", false)
			pdf.Ln(1.5)
		}
	}
	return pdf
}

func pdfHeader(pdf *fpdf.Fpdf, pal palette, title, subtitle string) {
	pdf.SetFont(pdfFont, "B", 22)
	pdf.SetTextColor(rgb(pal.primary))
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.SetFont(pdfFont, "", 11)
	pdf.SetTextColor(rgb(pal.muted))
	pdf.CellFormat(0, 7, subtitle, "", 1, "L", false, 0, "")

	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	y := pdf.GetY() + 2
	pdf.SetDrawColor(rgb(pal.primary))
	pdf.SetLineWidth(0.6)
	pdf.Line(left, y, width-right, y)
	pdf.SetLineWidth(0.2)
	pdf.Ln(8)
}

func pdfHeading(pdf *fpdf.Fpdf, pal palette, text string) {
	pdf.Ln(4)
	pdf.SetFont(pdfFont, "B", 15)
	pdf.SetTextColor(rgb(pal.primary))
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func pdfInsight(pdf *fpdf.Fpdf, pal palette, text string) {
	x, y := pdf.GetXY()
	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(rgb(pal.text))
	pdf.SetX(x + 4)
	pdf.MultiCell(0, 5, text, "", "L", false)
	pdf.SetDrawColor(rgb(pal.secondary))
	pdf.SetLineWidth(1.2)
	pdf.Line(x+1, y, x+1, pdf.GetY())
	pdf.SetLineWidth(0.2)
	pdf.Ln(2)
}
