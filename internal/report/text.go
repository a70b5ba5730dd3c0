package report

import (
	"fmt"
	"strings"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/scoring"
)

const dateLayout = "January 2, 2006"

// Text renders results as an unformatted report suitable for the clipboard.
func Text(results domain.Results) string {
	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nRAG ASSESSMENT RESULTS\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Date: %s\n\n", results.CompletedAt.Format(dateLayout))

	fmt.Fprintf(&b, "OVERALL SCORE\n%s\n", thin)
	fmt.Fprintf(&b, "%d out of %d points (%d%%)\n\n", results.OverallScore, results.OverallMaxScore,
		scoring.Percentage(results.OverallScore, results.OverallMaxScore))
	fmt.Fprintf(&b, "%s\n\n", results.OverallInsight)

	fmt.Fprintf(&b, "SECTION BREAKDOWN\n%s\n\n", rule)
	for _, s := range results.SectionScores {
		fmt.Fprintf(&b, "%s\n%s\n", s.SectionTitle, thin)
		fmt.Fprintf(&b, "Score: %d/%d (%d%%)\n\n", s.Score, s.MaxScore, scoring.Percentage(s.Score, s.MaxScore))
		fmt.Fprintf(&b, "%s\n\n", s.Insight)
		b.WriteString("Recommendations:\n")
		for i, tip := range s.Tips {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, tip)
		}
		b.WriteString("\n")
	}
	return b.String()
}
