package definition

import (
	"errors"
	"fmt"

	"rag-assessment/internal/domain"
)

// Validate enforces the fixed assessment shape: four sections with ids 1..4 in
// order, ten questions each, globally unique question ids, and exactly one
// option per rating on every question.
func Validate(def domain.Definition) error {
	var problems []error
	if len(def.Sections) != domain.SectionCount {
		problems = append(problems, fmt.Errorf("must have exactly %d sections, got %d", domain.SectionCount, len(def.Sections)))
	}

	seen := make(map[int]int)
	for i, s := range def.Sections {
		if s.ID != i+1 {
			problems = append(problems, fmt.Errorf("section %d: id must be %d, got %d", i+1, i+1, s.ID))
		}
		if len(s.Questions) != domain.QuestionsPerSection {
			problems = append(problems, fmt.Errorf("section %d must have exactly %d questions, got %d", i+1, domain.QuestionsPerSection, len(s.Questions)))
		}
		for _, q := range s.Questions {
			if prev, dup := seen[q.ID]; dup {
				problems = append(problems, fmt.Errorf("question id %d repeated in sections %d and %d", q.ID, prev, s.ID))
			}
			seen[q.ID] = s.ID
			if err := validateOptions(q); err != nil {
				problems = append(problems, err)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, errors.Join(problems...))
}

func validateOptions(q domain.Question) error {
	if len(q.Answers) != len(domain.Ratings) {
		return fmt.Errorf("question %d must have %d answers, got %d", q.ID, len(domain.Ratings), len(q.Answers))
	}
	tags := make(map[domain.Rating]bool, len(q.Answers))
	for _, a := range q.Answers {
		if !a.Rating.Valid() {
			return fmt.Errorf("question %d: unknown option %q", q.ID, a.Rating)
		}
		if tags[a.Rating] {
			return fmt.Errorf("question %d: duplicate option %q", q.ID, a.Rating)
		}
		tags[a.Rating] = true
	}
	return nil
}
