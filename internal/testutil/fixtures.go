// Package testutil builds assessment fixtures shared by package tests.
package testutil

import (
	"fmt"

	"rag-assessment/internal/domain"
)

// DefinitionID is the id carried by Definition().
const DefinitionID = "rag-test"

var ratingScores = map[domain.Rating]int{
	domain.RatingRed:   0,
	domain.RatingAmber: 5,
	domain.RatingGreen: 10,
}

// Definition returns a well-formed 4x10 definition. Question ids run 1..40 and
// every option scores by convention (Red 0, Amber 5, Green 10).
func Definition() domain.Definition {
	def := domain.Definition{
		ID: DefinitionID,
		BrandColors: domain.BrandColors{
			Primary:   "#1E3A5F",
			Secondary: "#3D7EAA",
			Red:       "#D9534F",
			Amber:     "#F0AD4E",
			Green:     "#5CB85C",
		},
		OverallInsights: domain.InsightTable{
			{Min: 0, Max: 120, Text: "overall low"},
			{Min: 121, Max: 280, Text: "overall mid"},
			{Min: 281, Max: 400, Text: "overall high"},
		},
	}
	qid := 1
	for s := 1; s <= domain.SectionCount; s++ {
		section := domain.Section{
			ID:          s,
			Title:       fmt.Sprintf("Section %d", s),
			Description: fmt.Sprintf("Description %d", s),
			Insights: domain.InsightTable{
				{Min: 0, Max: 30, Text: fmt.Sprintf("section %d low", s)},
				{Min: 31, Max: 60, Text: fmt.Sprintf("section %d mid", s)},
				{Min: 61, Max: 100, Text: fmt.Sprintf("section %d high", s)},
			},
		}
		for q := 0; q < domain.QuestionsPerSection; q++ {
			question := domain.Question{ID: qid, Text: fmt.Sprintf("Question %d", qid)}
			for _, r := range domain.Ratings {
				question.Answers = append(question.Answers, domain.AnswerOption{
					Rating: r,
					Score:  ratingScores[r],
					Tip:    Tip(qid, r),
				})
			}
			section.Questions = append(section.Questions, question)
			qid++
		}
		def.Sections = append(def.Sections, section)
	}
	return def
}

// Tip is the tip text Definition() attaches to a question's option.
func Tip(questionID int, rating domain.Rating) string {
	return fmt.Sprintf("q%d %s tip", questionID, rating)
}

// Answers answers every question of def with rating, in definition order.
func Answers(def domain.Definition, rating domain.Rating) []domain.UserAnswer {
	answers := make([]domain.UserAnswer, 0, def.QuestionCount())
	for _, section := range def.Sections {
		for _, q := range section.Questions {
			answers = append(answers, Answer(section.ID, q, rating))
		}
	}
	return answers
}

// Answer snapshots q's option for rating.
func Answer(sectionID int, q domain.Question, rating domain.Rating) domain.UserAnswer {
	opt, _ := q.Option(rating)
	return domain.UserAnswer{
		QuestionID:     q.ID,
		SectionID:      sectionID,
		SelectedOption: rating,
		Score:          opt.Score,
		Tip:            opt.Tip,
	}
}
