package definition

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"rag-assessment/internal/domain"
)

// DefaultID is the id of the definition shipped with the binary.
const DefaultID = "rag-assessment"

//go:embed builtin/*.json
var builtinFS embed.FS

// Builtin decodes every definition embedded in the binary, keyed by file name.
func Builtin() (map[string]domain.Definition, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Definition, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		def, err := Decode(id, data, FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		out[id] = def
	}
	return out, nil
}
