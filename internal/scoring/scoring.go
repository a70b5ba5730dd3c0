// Package scoring holds the pure scoring functions: section and overall sums,
// insight lookup, percentages and presentation bands.
package scoring

import (
	"math"

	"rag-assessment/internal/domain"
)

// FallbackInsight is returned when no range of an insight table contains the score.
const FallbackInsight = "Unable to determine insight for this score."

// SectionScore sums the scores of answers belonging to sectionID.
func SectionScore(sectionID int, answers []domain.UserAnswer) int {
	total := 0
	for _, a := range answers {
		if a.SectionID == sectionID {
			total += a.Score
		}
	}
	return total
}

// OverallScore sums the scores of all answers.
func OverallScore(answers []domain.UserAnswer) int {
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return total
}

// InsightForScore returns the text of the first range containing score.
// Tables are scanned in declaration order, so overlapping ranges resolve to
// whichever was declared first.
func InsightForScore(score int, table domain.InsightTable) string {
	for _, r := range table {
		if r.Contains(score) {
			return r.Text
		}
	}
	return FallbackInsight
}

// Percentage returns score/maxScore as a rounded whole percentage, or 0 when
// maxScore is 0.
func Percentage(score, maxScore int) int {
	if maxScore == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(maxScore) * 100))
}

// ScoreBand maps a percentage to its display band. Zero is its own band,
// distinct from red.
func ScoreBand(percentage int) domain.Band {
	switch {
	case percentage >= 70:
		return domain.BandGreen
	case percentage >= 40:
		return domain.BandAmber
	case percentage > 0:
		return domain.BandRed
	default:
		return domain.BandDefault
	}
}

// SectionTips returns the tips of answers in sectionID, in ledger order.
func SectionTips(sectionID int, answers []domain.UserAnswer) []string {
	tips := make([]string, 0, domain.QuestionsPerSection)
	for _, a := range answers {
		if a.SectionID == sectionID {
			tips = append(tips, a.Tip)
		}
	}
	return tips
}

// AllTips returns every tip in ledger order.
func AllTips(answers []domain.UserAnswer) []string {
	tips := make([]string, 0, len(answers))
	for _, a := range answers {
		tips = append(tips, a.Tip)
	}
	return tips
}

// Progress reports how many of total questions are answered.
func Progress(answered, total int) domain.Progress {
	return domain.Progress{
		Answered:   answered,
		Total:      total,
		Percentage: Percentage(answered, total),
	}
}
