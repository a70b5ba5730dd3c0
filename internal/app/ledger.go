package app

import "rag-assessment/internal/domain"

// Ledger is the ordered store of recorded answers, unique by question id.
// It is not safe for concurrent use; Session guards it.
type Ledger struct {
	answers []domain.UserAnswer
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record replaces the answer for the same question at its original index, or
// appends when the question has no answer yet.
func (l *Ledger) Record(answer domain.UserAnswer) {
	for i := range l.answers {
		if l.answers[i].QuestionID == answer.QuestionID {
			l.answers[i] = answer
			return
		}
	}
	l.answers = append(l.answers, answer)
}

// ForSection returns the answers of sectionID in ledger order.
func (l *Ledger) ForSection(sectionID int) []domain.UserAnswer {
	out := make([]domain.UserAnswer, 0, domain.QuestionsPerSection)
	for _, a := range l.answers {
		if a.SectionID == sectionID {
			out = append(out, a)
		}
	}
	return out
}

// Lookup returns the recorded answer for questionID.
func (l *Ledger) Lookup(questionID int) (domain.UserAnswer, bool) {
	for _, a := range l.answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return domain.UserAnswer{}, false
}

// IsComplete reports whether exactly expected answers are recorded.
func (l *Ledger) IsComplete(expected int) bool {
	return len(l.answers) == expected
}

// Len returns the number of recorded answers.
func (l *Ledger) Len() int {
	return len(l.answers)
}

// Answers returns a copy of the ledger contents.
func (l *Ledger) Answers() []domain.UserAnswer {
	out := make([]domain.UserAnswer, len(l.answers))
	copy(out, l.answers)
	return out
}

// Reset clears every answer.
func (l *Ledger) Reset() {
	l.answers = nil
}
