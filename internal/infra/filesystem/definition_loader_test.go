package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

func writeDefinition(t *testing.T, dir, name string, def domain.Definition) string {
	t.Helper()
	data, err := definition.Encode(def)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadDefinitionFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "team.json", testutil.Definition())
	writeDefinition(t, dir, "board.yaml", testutil.Definition())

	loader := NewDefinitionLoader(dir)
	def, err := loader.LoadDefinition(context.Background(), "team")
	require.NoError(t, err)
	assert.Equal(t, "team", def.ID)
	assert.Equal(t, 40, def.QuestionCount())

	def, err = loader.LoadDefinition(context.Background(), "board")
	require.NoError(t, err)
	assert.Equal(t, "board", def.ID)

	_, err = loader.LoadDefinition(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = loader.LoadDefinition(context.Background(), "../team")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestLoadDefinitionRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"sections": []}`), 0o644))

	_, err := NewDefinitionLoader(dir).LoadDefinition(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestReadFileDefaultsID(t *testing.T) {
	def := testutil.Definition()
	def.ID = ""
	path := writeDefinition(t, t.TempDir(), "quarterly.json", def)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "quarterly", got.ID)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
