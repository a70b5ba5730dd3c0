package definition

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rag-assessment/internal/domain"
	"rag-assessment/internal/testutil"
)

func TestBuiltinDefinitionIsValid(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)

	def, ok := defs[DefaultID]
	require.True(t, ok)
	assert.Equal(t, DefaultID, def.ID)
	assert.Len(t, def.Sections, 4)
	assert.Equal(t, 40, def.QuestionCount())
	assert.Equal(t, "#1E3A5F", def.BrandColors.Primary)
	require.Len(t, def.OverallInsights, 4)
	assert.Equal(t, domain.InsightRange{Min: 0, Max: 120, Text: def.OverallInsights[0].Text}, def.OverallInsights[0])
	assert.Equal(t, 321, def.OverallInsights[3].Min)
}

func TestDecodeRoundTripsThroughEncode(t *testing.T) {
	def := testutil.Definition()
	data, err := Encode(def)
	require.NoError(t, err)

	got, err := Decode("", data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestDecodeKeepsInsightDeclarationOrder(t *testing.T) {
	doc := FromDomain(testutil.Definition())
	doc.OverallInsights = InsightStatements{
		{Range: "200-400", Text: "top"},
		{Range: "0-199", Text: "bottom"},
		{Range: "150-250", Text: "overlap"},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	def, err := Decode("", data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.InsightTable{
		{Min: 200, Max: 400, Text: "top"},
		{Min: 0, Max: 199, Text: "bottom"},
		{Min: 150, Max: 250, Text: "overlap"},
	}, def.OverallInsights)
}

func TestDecodeYAML(t *testing.T) {
	def := testutil.Definition()
	data, err := Encode(def)
	require.NoError(t, err)

	// JSON is a subset of YAML, so the encoded document also decodes as YAML.
	got, err := Decode("from-yaml", data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", got.ID)
	assert.Equal(t, def.Sections, got.Sections)
	assert.Equal(t, def.OverallInsights, got.OverallInsights)
}

func TestDecodeYAMLDocument(t *testing.T) {
	src := `
id: tiny
overallInsights:
  "0-10": low
  "11-400": high
sections: []
`
	_, err := Decode("", []byte(src), FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, InsightStatements{{Range: "0-10", Text: "low"}, {Range: "11-400", Text: "high"}}, doc.OverallInsights)
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	cases := map[string]func(*Document){
		"three sections": func(d *Document) { d.Sections = d.Sections[:3] },
		"nine questions": func(d *Document) { d.Sections[1].Questions = d.Sections[1].Questions[:9] },
		"unknown option": func(d *Document) { d.Sections[0].Questions[0].Answers[0].Option = "Blue" },
		"bad range":      func(d *Document) { d.Sections[0].InsightStatements[0].Range = "low-high" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			doc := FromDomain(testutil.Definition())
			mutate(&doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = Decode("", data, FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidDefinition), "got %v", err)
		})
	}
}

func TestValidateShape(t *testing.T) {
	require.NoError(t, Validate(testutil.Definition()))

	def := testutil.Definition()
	def.Sections[2].Questions[0].ID = 1
	err := Validate(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "question id 1 repeated")

	def = testutil.Definition()
	def.Sections[0].ID, def.Sections[1].ID = 2, 1
	assert.ErrorIs(t, Validate(def), domain.ErrInvalidDefinition)

	def = testutil.Definition()
	def.Sections[3].Questions[4].Answers[2].Rating = domain.RatingRed
	err = Validate(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate option")
}

func TestParseRange(t *testing.T) {
	lo, hi, err := ParseRange("31-60")
	require.NoError(t, err)
	assert.Equal(t, 31, lo)
	assert.Equal(t, 60, hi)

	lo, hi, err = ParseRange(" 0 - 30 ")
	require.NoError(t, err)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 30, hi)

	for _, bad := range []string{"", "10", "a-b", "60-31"} {
		_, _, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("defs/a.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("defs/a.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("defs/a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("defs/a"))
}
