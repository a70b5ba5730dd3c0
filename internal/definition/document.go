// Package definition decodes and validates assessment definition documents.
//
// Documents key insight text by "min-max" strings; those keys are parsed once,
// here, into ordered domain.InsightTable ranges so lookups never split strings.
package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"rag-assessment/internal/domain"
)

// Format is the serialization of a definition document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the authored form of a definition.
type Document struct {
	ID              string            `json:"id,omitempty" yaml:"id"`
	BrandColors     BrandColors       `json:"brandColors" yaml:"brandColors"`
	Sections        []SectionDocument `json:"sections" yaml:"sections"`
	OverallInsights InsightStatements `json:"overallInsights" yaml:"overallInsights"`
}

type BrandColors struct {
	Primary   string `json:"primary,omitempty" yaml:"primary"`
	Secondary string `json:"secondary,omitempty" yaml:"secondary"`
	Red       string `json:"red,omitempty" yaml:"red"`
	Amber     string `json:"amber,omitempty" yaml:"amber"`
	Green     string `json:"green,omitempty" yaml:"green"`
}

type SectionDocument struct {
	ID                int                `json:"id" yaml:"id"`
	Title             string             `json:"title" yaml:"title"`
	Description       string             `json:"description" yaml:"description"`
	Questions         []QuestionDocument `json:"questions" yaml:"questions"`
	InsightStatements InsightStatements  `json:"insightStatements" yaml:"insightStatements"`
}

type QuestionDocument struct {
	ID      int              `json:"id" yaml:"id"`
	Text    string           `json:"text" yaml:"text"`
	Answers []AnswerDocument `json:"answers" yaml:"answers"`
}

type AnswerDocument struct {
	Option string `json:"option" yaml:"option"`
	Score  int    `json:"score" yaml:"score"`
	Tip    string `json:"tip" yaml:"tip"`
}

// InsightStatement is one "min-max" keyed entry.
type InsightStatement struct {
	Range string
	Text  string
}

// InsightStatements keeps the document order of an insight object, which a Go
// map would lose.
type InsightStatements []InsightStatement

func (s *InsightStatements) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("insight statements must be an object")
	}
	var out InsightStatements
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("insight %q: %w", key, err)
		}
		out = append(out, InsightStatement{Range: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s InsightStatements) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(st.Range)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(st.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *InsightStatements) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: insight statements must be a mapping", node.Line)
	}
	out := make(InsightStatements, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var text string
		if err := node.Content[i+1].Decode(&text); err != nil {
			return fmt.Errorf("insight %q: %w", node.Content[i].Value, err)
		}
		out = append(out, InsightStatement{Range: node.Content[i].Value, Text: text})
	}
	*s = out
	return nil
}

// Table parses the statements into ordered inclusive ranges.
func (s InsightStatements) Table() (domain.InsightTable, error) {
	table := make(domain.InsightTable, 0, len(s))
	for _, st := range s {
		lo, hi, err := ParseRange(st.Range)
		if err != nil {
			return nil, err
		}
		table = append(table, domain.InsightRange{Min: lo, Max: hi, Text: st.Text})
	}
	return table, nil
}

// ParseRange parses an inclusive "min-max" key such as "31-60".
func ParseRange(key string) (int, int, error) {
	rawMin, rawMax, ok := strings.Cut(strings.TrimSpace(key), "-")
	if !ok {
		return 0, 0, fmt.Errorf("insight range %q: want min-max", key)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(rawMin))
	if err != nil {
		return 0, 0, fmt.Errorf("insight range %q: min: %w", key, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(rawMax))
	if err != nil {
		return 0, 0, fmt.Errorf("insight range %q: max: %w", key, err)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("insight range %q: min exceeds max", key)
	}
	return lo, hi, nil
}

// ToDomain converts the document, parsing every insight table.
func (d Document) ToDomain() (domain.Definition, error) {
	overall, err := d.OverallInsights.Table()
	if err != nil {
		return domain.Definition{}, fmt.Errorf("overall insights: %w", err)
	}
	def := domain.Definition{
		ID:              d.ID,
		BrandColors:     domain.BrandColors(d.BrandColors),
		OverallInsights: overall,
		Sections:        make([]domain.Section, 0, len(d.Sections)),
	}
	for _, sd := range d.Sections {
		insights, err := sd.InsightStatements.Table()
		if err != nil {
			return domain.Definition{}, fmt.Errorf("section %d insights: %w", sd.ID, err)
		}
		section := domain.Section{
			ID:          sd.ID,
			Title:       sd.Title,
			Description: sd.Description,
			Insights:    insights,
			Questions:   make([]domain.Question, 0, len(sd.Questions)),
		}
		for _, qd := range sd.Questions {
			q := domain.Question{ID: qd.ID, Text: qd.Text, Answers: make([]domain.AnswerOption, 0, len(qd.Answers))}
			for _, ad := range qd.Answers {
				q.Answers = append(q.Answers, domain.AnswerOption{
					Rating: domain.Rating(ad.Option),
					Score:  ad.Score,
					Tip:    ad.Tip,
				})
			}
			section.Questions = append(section.Questions, q)
		}
		def.Sections = append(def.Sections, section)
	}
	return def, nil
}

// FromDomain renders a definition back into its authored form.
func FromDomain(def domain.Definition) Document {
	doc := Document{
		ID:              def.ID,
		BrandColors:     BrandColors(def.BrandColors),
		OverallInsights: statements(def.OverallInsights),
	}
	for _, s := range def.Sections {
		sd := SectionDocument{
			ID:                s.ID,
			Title:             s.Title,
			Description:       s.Description,
			InsightStatements: statements(s.Insights),
		}
		for _, q := range s.Questions {
			qd := QuestionDocument{ID: q.ID, Text: q.Text}
			for _, a := range q.Answers {
				qd.Answers = append(qd.Answers, AnswerDocument{Option: string(a.Rating), Score: a.Score, Tip: a.Tip})
			}
			sd.Questions = append(sd.Questions, qd)
		}
		doc.Sections = append(doc.Sections, sd)
	}
	return doc
}

func statements(table domain.InsightTable) InsightStatements {
	out := make(InsightStatements, 0, len(table))
	for _, r := range table {
		out = append(out, InsightStatement{Range: fmt.Sprintf("%d-%d", r.Min, r.Max), Text: r.Text})
	}
	return out
}

// Decode parses, schema-checks and shape-checks a document. A non-empty id
// overrides the id carried by the document. Every failure wraps
// domain.ErrInvalidDefinition.
func Decode(id string, data []byte, format Format) (domain.Definition, error) {
	var doc Document
	raw := data
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
		var err error
		if raw, err = json.Marshal(doc); err != nil {
			return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
	}
	if err := validateSchema(raw); err != nil {
		return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	if format != FormatYAML {
		if err := json.Unmarshal(data, &doc); err != nil {
			return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
	}

	def, err := doc.ToDomain()
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	if id != "" {
		def.ID = id
	}
	if err := Validate(def); err != nil {
		return domain.Definition{}, err
	}
	return def, nil
}

// Encode renders def as an indented JSON document.
func Encode(def domain.Definition) ([]byte, error) {
	return json.MarshalIndent(FromDomain(def), "", "  ")
}
