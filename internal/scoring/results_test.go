package scoring

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

func TestBuildResultsRejectsIncompleteLedger(t *testing.T) {
	def := testutil.Definition()
	answers := testutil.Answers(def, domain.RatingGreen)[:39]

	_, err := BuildResults(answers, def, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIncompleteQuiz))

	var incomplete *domain.IncompleteQuizError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 39, incomplete.Answered)
	assert.Equal(t, 40, incomplete.Expected)

	_, err = BuildResults(nil, def, time.Now())
	assert.ErrorIs(t, err, domain.ErrIncompleteQuiz)
}

func TestBuildResultsAllGreen(t *testing.T) {
	def := testutil.Definition()
	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	res, err := BuildResults(testutil.Answers(def, domain.RatingGreen), def, at)
	require.NoError(t, err)

	assert.Equal(t, 400, res.OverallScore)
	assert.Equal(t, 400, res.OverallMaxScore)
	assert.Equal(t, "overall high", res.OverallInsight)
	assert.Equal(t, at, res.CompletedAt)
	assert.Equal(t, 100, Percentage(res.OverallScore, res.OverallMaxScore))
	assert.Equal(t, domain.BandGreen, ScoreBand(100))
	require.Len(t, res.SectionScores, 4)
	for i, s := range res.SectionScores {
		assert.Equal(t, i+1, s.SectionID)
		assert.Equal(t, 100, s.Score)
		assert.Equal(t, 100, s.MaxScore)
		assert.Equal(t, def.Sections[i].Title, s.SectionTitle)
		assert.Len(t, s.Tips, 10)
	}
	assert.Len(t, res.AllTips, 40)
	assert.Equal(t, testutil.Tip(1, domain.RatingGreen), res.AllTips[0])
}

func TestBuildResultsAllRed(t *testing.T) {
	def := testutil.Definition()

	res, err := BuildResults(testutil.Answers(def, domain.RatingRed), def, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, res.OverallScore)
	assert.Equal(t, "overall low", res.OverallInsight)
	for _, s := range res.SectionScores {
		assert.Equal(t, 0, s.Score)
		assert.Equal(t, fmt.Sprintf("section %d low", s.SectionID), s.Insight)
	}
	assert.Equal(t, domain.BandDefault, ScoreBand(Percentage(res.OverallScore, res.OverallMaxScore)))
}

func TestBuildResultsBounds(t *testing.T) {
	def := testutil.Definition()
	answers := testutil.Answers(def, domain.RatingAmber)
	for i := 0; i < len(answers); i += 3 {
		q := def.Sections[i/10].Questions[i%10]
		answers[i] = testutil.Answer(i/10+1, q, domain.RatingGreen)
	}

	res, err := BuildResults(answers, def, time.Now())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.OverallScore, 400)
	for _, s := range res.SectionScores {
		assert.LessOrEqual(t, s.Score, 100)
	}
}

func TestBuildResultsIsNotCached(t *testing.T) {
	def := testutil.Definition()
	answers := testutil.Answers(def, domain.RatingAmber)
	first, err := BuildResults(answers, def, time.Unix(100, 0))
	require.NoError(t, err)
	second, err := BuildResults(answers, def, time.Unix(200, 0))
	require.NoError(t, err)

	assert.NotEqual(t, first.CompletedAt, second.CompletedAt)
	first.CompletedAt = second.CompletedAt
	assert.Equal(t, first, second)
}
