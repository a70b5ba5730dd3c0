package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assessment/internal/app"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func newSession() *app.Session {
	return app.NewSessionWithClock("s-1", testutil.Definition(), func() time.Time { return fixedNow })
}

func TestSessionInitialView(t *testing.T) {
	view := newSession().View()

	assert.Equal(t, "s-1", view.SessionID)
	assert.Equal(t, testutil.DefinitionID, view.DefinitionID)
	assert.Equal(t, 1, view.QuestionID)
	assert.Equal(t, "Section 1", view.SectionTitle)
	assert.Equal(t, domain.SectionCount, view.TotalSections)
	assert.Equal(t, domain.QuestionsPerSection, view.QuestionsInSection)
	assert.Len(t, view.Options, 3)
	assert.Empty(t, view.Selected)
	assert.False(t, view.CanRetreat)
	assert.Equal(t, domain.Progress{Answered: 0, Total: domain.TotalQuestions, Percentage: 0}, view.Progress)
}

func TestSessionNextRequiresAnswer(t *testing.T) {
	s := newSession()

	_, err := s.Next()
	require.ErrorIs(t, err, domain.ErrQuestionUnanswered)
	assert.Equal(t, domain.Position{}, s.View().Position)

	_, err = s.Select(domain.RatingAmber)
	require.NoError(t, err)
	view, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, view.QuestionID)
	assert.True(t, view.CanRetreat)
}

func TestSessionSelectUnknownOption(t *testing.T) {
	s := newSession()
	_, err := s.Select(domain.Rating("Blue"))
	require.ErrorIs(t, err, domain.ErrOptionNotFound)
	assert.Empty(t, s.Answers())
}

func TestSessionChangeAnswerAfterRetreat(t *testing.T) {
	s := newSession()
	_, _ = s.Select(domain.RatingRed)
	_, _ = s.Next()
	view := s.Previous()
	assert.Equal(t, domain.RatingRed, view.Selected)

	view, err := s.Select(domain.RatingGreen)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingGreen, view.Selected)

	answers := s.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, 10, answers[0].Score)
}

func TestSessionResultsLifecycle(t *testing.T) {
	s := newSession()

	_, err := s.Results()
	var incomplete *domain.IncompleteQuizError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 0, incomplete.Answered)
	assert.Equal(t, domain.TotalQuestions, incomplete.Expected)

	for i := 0; i < domain.TotalQuestions; i++ {
		_, err := s.Select(domain.RatingGreen)
		require.NoError(t, err)
		_, err = s.Next()
		require.NoError(t, err)
	}
	view := s.View()
	assert.True(t, view.Complete)
	assert.True(t, view.IsLastQuestion)
	assert.Equal(t, 100, view.Progress.Percentage)

	results, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, domain.OverallMaxScore, results.OverallScore)
	assert.Equal(t, fixedNow, results.CompletedAt)

	view = s.Reset()
	assert.Equal(t, domain.Position{}, view.Position)
	assert.Zero(t, view.Progress.Answered)
	assert.False(t, s.IsComplete())
}

func TestSessionJumpToSection(t *testing.T) {
	s := newSession()

	view, moved := s.JumpToSection(3)
	assert.True(t, moved)
	assert.Equal(t, 31, view.QuestionID)

	view, moved = s.JumpToSection(4)
	assert.False(t, moved)
	assert.Equal(t, 31, view.QuestionID)
}
