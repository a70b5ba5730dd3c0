package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/logger"
	"rag-assessment/internal/report"
)

// SessionRepository abstracts how live sessions are held (in-memory, Redis, etc).
type SessionRepository interface {
	Add(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// DefinitionRepository loads definitions (from cache/backing store).
type DefinitionRepository interface {
	GetDefinition(ctx context.Context, definitionID string) (domain.Definition, error)
}

// ReportRenderer turns results into a downloadable document.
type ReportRenderer interface {
	Render(ctx context.Context, f report.Format, results domain.Results, brand domain.BrandColors) (report.Document, error)
}

// AssessmentService contains the assessment use cases. Every call after Start
// names its session explicitly.
type AssessmentService struct {
	sessions    SessionRepository
	definitions DefinitionRepository
	reports     ReportRenderer
	log         *logger.Logger
	now         func() time.Time
}

func NewAssessmentService(sessions SessionRepository, definitions DefinitionRepository, reports ReportRenderer, log *logger.Logger) *AssessmentService {
	return &AssessmentService{
		sessions:    sessions,
		definitions: definitions,
		reports:     reports,
		log:         log.With("component", "assessment"),
		now:         time.Now,
	}
}

// WithClock is test-only for deterministic result timestamps.
func (s *AssessmentService) WithClock(now func() time.Time) *AssessmentService {
	s.now = now
	return s
}

// Start loads and validates the definition, then opens a new session on it.
// Any load or validation failure is a *domain.DefinitionLoadError.
func (s *AssessmentService) Start(ctx context.Context, definitionID string) (domain.SessionView, error) {
	def, err := s.definitions.GetDefinition(ctx, definitionID)
	if err == nil {
		err = definition.Validate(def)
	}
	if err != nil {
		s.log.Warn("definition load failed", "definition", definitionID, "error", err)
		return domain.SessionView{}, &domain.DefinitionLoadError{DefinitionID: definitionID, Err: err}
	}

	session := newSessionWithClock(uuid.NewString(), def, s.now)
	s.sessions.Add(session)
	s.log.Info("session started", "session", session.ID(), "definition", def.ID)
	return session.View(), nil
}

// Current returns the session's wizard snapshot.
func (s *AssessmentService) Current(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.View(), nil
}

// Answer records the current question's option tagged rating.
func (s *AssessmentService) Answer(_ context.Context, sessionID string, rating domain.Rating) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.Select(rating)
}

// Next advances past an answered question.
func (s *AssessmentService) Next(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.Next()
}

// Previous moves back one question.
func (s *AssessmentService) Previous(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.Previous(), nil
}

// JumpToSection moves to the first question of a zero-based section index.
// Out-of-range indexes leave the position unchanged and are not errors.
func (s *AssessmentService) JumpToSection(_ context.Context, sessionID string, index int) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	view, moved := session.JumpToSection(index)
	if !moved {
		s.log.Debug("section jump ignored", "session", sessionID, "index", index)
	}
	return view, nil
}

// Reset clears the session's answers and position.
func (s *AssessmentService) Reset(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	s.log.Info("session reset", "session", sessionID)
	return session.Reset(), nil
}

// Results assembles a fresh results snapshot. Before every question is
// answered it fails with *domain.IncompleteQuizError.
func (s *AssessmentService) Results(_ context.Context, sessionID string) (domain.Results, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.Results{}, err
	}
	return session.Results()
}

// Report renders the session's results. Renderer failures are logged and
// returned as *domain.ReportGenerationError; the session is left untouched.
func (s *AssessmentService) Report(ctx context.Context, sessionID string, f report.Format) (report.Document, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return report.Document{}, err
	}
	results, err := session.Results()
	if err != nil {
		return report.Document{}, err
	}
	doc, err := s.reports.Render(ctx, f, results, session.Definition().BrandColors)
	if err != nil {
		s.log.Error("report generation failed", "session", sessionID, "format", f, "error", err)
		return report.Document{}, &domain.ReportGenerationError{Format: string(f), Err: err}
	}
	return doc, nil
}

// End tears the session down.
func (s *AssessmentService) End(_ context.Context, sessionID string) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return
	}
	s.sessions.Delete(sessionID)
	s.log.Info("session ended", "session", sessionID)
}

func (s *AssessmentService) session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
