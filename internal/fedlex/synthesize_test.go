package fedlex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	output string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.output, f.err
}

func TestSanitizeQuery_StripsLeadingFenceWithLanguage(t *testing.T) {
	got := SanitizeQuery("```sparql\nSELECT ?x WHERE { ?x a jolux:Consolidation }\n```")
	assert.Equal(t, "SELECT ?x WHERE { ?x a jolux:Consolidation }", got)
}

func TestSanitizeQuery_StripsBareFence(t *testing.T) {
	got := SanitizeQuery("```\nSELECT ?x WHERE { }\n```")
	assert.Equal(t, "SELECT ?x WHERE { }", got)
}

func TestSanitizeQuery_StripsPrefixLines(t *testing.T) {
	raw := "PREFIX jolux: <http://example.org/jolux#>\n" +
		"  prefix skos: <http://example.org/skos#>\n" +
		"SELECT ?x WHERE { ?x a jolux:Consolidation }"
	got := SanitizeQuery(raw)
	assert.Equal(t, "SELECT ?x WHERE { ?x a jolux:Consolidation }", got)
}

func TestSanitizeQuery_KeepsQueryBodyIntact(t *testing.T) {
	query := "SELECT DISTINCT ?work ?title WHERE {\n    ?work a jolux:ConsolidationAbstract .\n}\nLIMIT 10"
	assert.Equal(t, query, SanitizeQuery(query))
}

func TestSanitizeQuery_Idempotent(t *testing.T) {
	inputs := []string{
		"```sparql\nPREFIX x: <u>\nSELECT ?a WHERE { }\n```",
		"SELECT ?a WHERE { }",
		"```\nSELECT ?a\nWHERE { FILTER(CONTAINS(LCASE(?t), \"asyl\")) }\n```",
		"",
	}
	for _, input := range inputs {
		once := SanitizeQuery(input)
		assert.Equal(t, once, SanitizeQuery(once), "input %q", input)
	}
}

func TestSynthesize_SanitizesModelOutput(t *testing.T) {
	gen := &fakeGenerator{output: "```sparql\nPREFIX jolux: <u>\nSELECT ?work WHERE { }\n```"}
	synth := NewSynthesizer(gen)

	query, err := synth.Synthesize(context.Background(), "laws about asylum")
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?work WHERE { }", query)

	assert.Contains(t, gen.prompt, "laws about asylum")
	assert.Contains(t, gen.prompt, "jolux:ConsolidationAbstract")
}

func TestSynthesize_ModelFailure(t *testing.T) {
	synth := NewSynthesizer(&fakeGenerator{err: errors.New("model unreachable")})

	_, err := synth.Synthesize(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unreachable")
}

func TestSynthesize_EmptyModelOutput(t *testing.T) {
	synth := NewSynthesizer(&fakeGenerator{output: "```sparql\n```"})

	_, err := synth.Synthesize(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
