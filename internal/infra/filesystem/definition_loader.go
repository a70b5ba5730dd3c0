package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
)

var extensions = []string{".json", ".yaml", ".yml"}

// DefinitionLoader reads <dir>/<id>.json (or .yaml/.yml) documents.
type DefinitionLoader struct {
	dir string
}

func NewDefinitionLoader(dir string) *DefinitionLoader {
	return &DefinitionLoader{dir: dir}
}

func (l *DefinitionLoader) LoadDefinition(ctx context.Context, definitionID string) (domain.Definition, error) {
	if definitionID == "" || strings.ContainsAny(definitionID, `/\`) || strings.Contains(definitionID, "..") {
		return domain.Definition{}, domain.ErrDefinitionNotFound
	}
	for _, ext := range extensions {
		if err := ctx.Err(); err != nil {
			return domain.Definition{}, err
		}
		path := filepath.Join(l.dir, definitionID+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Definition{}, fmt.Errorf("read definition: %w", err)
		}
		return definition.Decode(definitionID, data, definition.FormatFromPath(path))
	}
	return domain.Definition{}, domain.ErrDefinitionNotFound
}

// ReadFile decodes a single definition document from path; the id defaults to
// the file name without extension when the document carries none.
func ReadFile(path string) (domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("read definition: %w", err)
	}
	def, err := definition.Decode("", data, definition.FormatFromPath(path))
	if err != nil {
		return domain.Definition{}, err
	}
	if def.ID == "" {
		base := filepath.Base(path)
		def.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}
