package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assessment/internal/app"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

func TestLedgerUpsertKeepsPosition(t *testing.T) {
	def := testutil.Definition()
	q1 := def.Sections[0].Questions[0]
	q2 := def.Sections[0].Questions[1]

	l := app.NewLedger()
	l.Record(testutil.Answer(1, q1, domain.RatingRed))
	l.Record(testutil.Answer(1, q2, domain.RatingRed))
	l.Record(testutil.Answer(1, q1, domain.RatingGreen))

	answers := l.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, q1.ID, answers[0].QuestionID)
	assert.Equal(t, domain.RatingGreen, answers[0].SelectedOption)
	assert.Equal(t, 10, answers[0].Score)
	assert.Equal(t, testutil.Tip(q1.ID, domain.RatingGreen), answers[0].Tip)
	assert.Equal(t, q2.ID, answers[1].QuestionID)
}

func TestLedgerForSection(t *testing.T) {
	def := testutil.Definition()
	l := app.NewLedger()
	for _, a := range testutil.Answers(def, domain.RatingAmber) {
		l.Record(a)
	}

	got := l.ForSection(3)
	require.Len(t, got, domain.QuestionsPerSection)
	for _, a := range got {
		assert.Equal(t, 3, a.SectionID)
	}
	assert.Empty(t, l.ForSection(7))
}

func TestLedgerCompletenessAndReset(t *testing.T) {
	def := testutil.Definition()
	l := app.NewLedger()
	answers := testutil.Answers(def, domain.RatingGreen)

	for _, a := range answers[:len(answers)-1] {
		l.Record(a)
	}
	assert.False(t, l.IsComplete(def.QuestionCount()))

	l.Record(answers[len(answers)-1])
	assert.True(t, l.IsComplete(def.QuestionCount()))

	_, ok := l.Lookup(answers[5].QuestionID)
	assert.True(t, ok)

	l.Reset()
	assert.Zero(t, l.Len())
	_, ok = l.Lookup(answers[5].QuestionID)
	assert.False(t, ok)
}

func TestLedgerAnswersIsACopy(t *testing.T) {
	def := testutil.Definition()
	l := app.NewLedger()
	l.Record(testutil.Answer(1, def.Sections[0].Questions[0], domain.RatingRed))

	out := l.Answers()
	out[0].Score = 99

	got, _ := l.Lookup(def.Sections[0].Questions[0].ID)
	assert.Equal(t, 0, got.Score)
}
