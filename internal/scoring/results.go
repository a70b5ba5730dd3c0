package scoring

import (
	"time"

	"rag-assessment/internal/domain"
)

// BuildResults assembles a fresh results snapshot. Every question of def must
// have exactly one answer; anything less is an *domain.IncompleteQuizError and
// no partial result is produced.
func BuildResults(answers []domain.UserAnswer, def domain.Definition, now time.Time) (domain.Results, error) {
	expected := def.QuestionCount()
	if len(answers) != expected {
		return domain.Results{}, &domain.IncompleteQuizError{Answered: len(answers), Expected: expected}
	}

	sections := make([]domain.SectionScore, 0, len(def.Sections))
	for _, section := range def.Sections {
		score := SectionScore(section.ID, answers)
		sections = append(sections, domain.SectionScore{
			SectionID:    section.ID,
			SectionTitle: section.Title,
			Score:        score,
			MaxScore:     domain.SectionMaxScore,
			Insight:      InsightForScore(score, section.Insights),
			Tips:         SectionTips(section.ID, answers),
		})
	}

	overall := OverallScore(answers)
	return domain.Results{
		OverallScore:    overall,
		OverallMaxScore: domain.OverallMaxScore,
		OverallInsight:  InsightForScore(overall, def.OverallInsights),
		SectionScores:   sections,
		AllTips:         AllTips(answers),
		CompletedAt:     now,
	}, nil
}
