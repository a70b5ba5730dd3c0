package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when a session id is unknown or already ended.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrDefinitionNotFound indicates the definition source has no document for an id.
	ErrDefinitionNotFound = errors.New("assessment definition not found")
	// ErrInvalidDefinition marks shape or schema violations in a definition document.
	ErrInvalidDefinition = errors.New("invalid assessment definition")
	// ErrOptionNotFound indicates a submitted rating is not offered by the question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrQuestionUnanswered is returned when advancing past a question with no answer.
	ErrQuestionUnanswered = errors.New("current question has not been answered")
	// ErrIncompleteQuiz is the sentinel behind IncompleteQuizError.
	ErrIncompleteQuiz = errors.New("cannot compute results for an incomplete quiz")
	// ErrUnsupportedFormat indicates an unknown report format.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// DefinitionLoadError is returned when the definition source is unreachable or
// the document fails validation. It blocks session start.
type DefinitionLoadError struct {
	DefinitionID string
	Err          error
}

func (e *DefinitionLoadError) Error() string {
	return fmt.Sprintf("load definition %q: %v", e.DefinitionID, e.Err)
}

func (e *DefinitionLoadError) Unwrap() error { return e.Err }

// IncompleteQuizError is returned when results are requested before every
// question has an answer.
type IncompleteQuizError struct {
	Answered int
	Expected int
}

func (e *IncompleteQuizError) Error() string {
	return fmt.Sprintf("%v: %d of %d answered", ErrIncompleteQuiz, e.Answered, e.Expected)
}

func (e *IncompleteQuizError) Unwrap() error { return ErrIncompleteQuiz }

// ReportGenerationError wraps a renderer failure.
type ReportGenerationError struct {
	Format string
	Err    error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("generate %s report: %v", e.Format, e.Err)
}

func (e *ReportGenerationError) Unwrap() error { return e.Err }
