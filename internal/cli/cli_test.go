package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--log-mode", "prod"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeAnswers(t *testing.T, def domain.Definition, rating domain.Rating) string {
	t.Helper()
	var sels []selection
	for _, s := range def.Sections {
		for _, q := range s.Questions {
			sels = append(sels, selection{QuestionID: q.ID, Option: rating})
		}
	}
	data, err := json.Marshal(sels)
	require.NoError(t, err)
	return writeFile(t, "answers.json", data)
}

func TestValidateCommand(t *testing.T) {
	data, err := definition.Encode(testutil.Definition())
	require.NoError(t, err)
	path := writeFile(t, "custom.json", data)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, testutil.DefinitionID+": ok (4 sections, 40 questions)")
}

func TestValidateCommandRejectsBadDocument(t *testing.T) {
	path := writeFile(t, "broken.json", []byte(`{"sections": []}`))

	_, err := run(t, "validate", path)
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestReportCommandText(t *testing.T) {
	defs, err := definition.Builtin()
	require.NoError(t, err)
	answers := writeAnswers(t, defs[definition.DefaultID], domain.RatingGreen)

	out, err := run(t, "report", "--answers", answers, "--format", "text", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "RAG ASSESSMENT RESULTS")
	assert.Contains(t, out, "400 out of 400 points (100%)")
}

func TestReportCommandWritesFile(t *testing.T) {
	def := testutil.Definition()
	data, err := definition.Encode(def)
	require.NoError(t, err)
	defPath := writeFile(t, "custom.json", data)
	answers := writeAnswers(t, def, domain.RatingAmber)
	outPath := filepath.Join(t.TempDir(), "report.pdf")

	out, err := run(t, "report", "--definition", defPath, "--answers", answers, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(200/400)")

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestReportCommandIncompleteAnswers(t *testing.T) {
	answers := writeFile(t, "answers.json", []byte(`[{"questionId": 1, "option": "Green"}]`))

	_, err := run(t, "report", "--answers", answers, "--format", "text", "--out", "-")
	require.ErrorIs(t, err, domain.ErrIncompleteQuiz)
}

func TestResolveSelectionsRejectsUnknownOption(t *testing.T) {
	def := testutil.Definition()
	_, err := resolveSelections(def, []selection{{QuestionID: 3, Option: "Blue"}})
	require.ErrorIs(t, err, domain.ErrOptionNotFound)

	_, err = resolveSelections(def, []selection{{QuestionID: 99, Option: domain.RatingRed}})
	require.Error(t, err)
}
