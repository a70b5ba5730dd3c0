package app

import (
	"sync"
	"time"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/scoring"
)

// Session is one in-memory assessment run: a definition, its answer ledger and
// its navigation cursor. All access goes through the session's lock.
type Session struct {
	id        string
	def       domain.Definition
	createdAt time.Time
	now       func() time.Time

	mu     sync.Mutex
	ledger *Ledger
	nav    *Navigator
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, def domain.Definition) *Session {
	return newSessionWithClock(id, def, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, def domain.Definition, now func() time.Time) *Session {
	return newSessionWithClock(id, def, now)
}

func newSessionWithClock(id string, def domain.Definition, now func() time.Time) *Session {
	return &Session{
		id:        id,
		def:       def,
		createdAt: now(),
		now:       now,
		ledger:    NewLedger(),
		nav:       NewNavigator(def),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Definition returns the definition the session runs against.
func (s *Session) Definition() domain.Definition { return s.def }

// CreatedAt returns when the session started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// View returns the current wizard snapshot.
func (s *Session) View() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Select records the current question's option tagged rating.
func (s *Session) Select(rating domain.Rating) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, question, ok := s.def.QuestionAt(s.nav.Position())
	if !ok {
		return s.viewLocked(), domain.ErrOptionNotFound
	}
	opt, ok := question.Option(rating)
	if !ok {
		return s.viewLocked(), domain.ErrOptionNotFound
	}
	s.ledger.Record(domain.UserAnswer{
		QuestionID:     question.ID,
		SectionID:      section.ID,
		SelectedOption: opt.Rating,
		Score:          opt.Score,
		Tip:            opt.Tip,
	})
	return s.viewLocked(), nil
}

// Record stores a caller-built answer snapshot without checking it against
// the definition.
func (s *Session) Record(answer domain.UserAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Record(answer)
}

// Next advances the cursor once the current question has an answer. On the
// last question it leaves the cursor in place; callers move on to results.
func (s *Session) Next() (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, question, ok := s.def.QuestionAt(s.nav.Position())
	if !ok {
		return s.viewLocked(), domain.ErrQuestionUnanswered
	}
	if _, answered := s.ledger.Lookup(question.ID); !answered {
		return s.viewLocked(), domain.ErrQuestionUnanswered
	}
	s.nav.Advance()
	return s.viewLocked(), nil
}

// Previous moves the cursor back one question.
func (s *Session) Previous() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Retreat()
	return s.viewLocked()
}

// JumpToSection moves to the first question of section index and reports
// whether the index was in range.
func (s *Session) JumpToSection(index int) (domain.SessionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.nav.JumpToSection(index)
	return s.viewLocked(), moved
}

// Reset clears every answer and rewinds the cursor.
func (s *Session) Reset() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Reset()
	s.nav.Reset()
	return s.viewLocked()
}

// Answers returns a copy of the ledger.
func (s *Session) Answers() []domain.UserAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Answers()
}

// IsComplete reports whether every question has an answer.
func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsComplete(s.def.QuestionCount())
}

// Results builds a fresh results snapshot stamped with the session clock.
func (s *Session) Results() (domain.Results, error) {
	s.mu.Lock()
	answers := s.ledger.Answers()
	s.mu.Unlock()
	return scoring.BuildResults(answers, s.def, s.now())
}

func (s *Session) viewLocked() domain.SessionView {
	pos := s.nav.Position()
	view := domain.SessionView{
		SessionID:      s.id,
		DefinitionID:   s.def.ID,
		Position:       pos,
		TotalSections:  len(s.def.Sections),
		Progress:       scoring.Progress(s.ledger.Len(), s.def.QuestionCount()),
		CanRetreat:     !s.nav.AtStart(),
		IsLastQuestion: s.nav.AtEnd(),
		Complete:       s.ledger.IsComplete(s.def.QuestionCount()),
	}
	section, question, ok := s.def.QuestionAt(pos)
	if !ok {
		return view
	}
	view.SectionID = section.ID
	view.SectionTitle = section.Title
	view.SectionDescription = section.Description
	view.QuestionsInSection = len(section.Questions)
	view.QuestionID = question.ID
	view.QuestionText = question.Text
	view.Options = make([]domain.OptionView, 0, len(question.Answers))
	for _, opt := range question.Answers {
		view.Options = append(view.Options, domain.OptionView{Rating: opt.Rating})
	}
	if answer, ok := s.ledger.Lookup(question.ID); ok {
		view.Selected = answer.SelectedOption
	}
	return view
}
