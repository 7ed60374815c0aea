package fedlex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrEmptyQuery is returned when the model produces no usable query text.
var ErrEmptyQuery = errors.New("model returned an empty query")

// Generator produces text from a prompt. Satisfied by llm.OllamaLLM.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer turns a natural-language question into an executable SPARQL
// query using a text-generation model. It performs no semantic validation;
// malformed queries surface at execution time.
type Synthesizer struct {
	gen Generator
}

// NewSynthesizer creates a query synthesizer backed by the given model.
func NewSynthesizer(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// BuildPrompt assembles the synthesis prompt: ontology primer, hard rules,
// worked examples, then the question.
func (s *Synthesizer) BuildPrompt(question string) string {
	var b strings.Builder

	b.WriteString("You are a SPARQL query expert for the Swiss Fedlex legal database using the JOLux ontology.\n\n")
	b.WriteString("Given a natural language question, generate a valid SPARQL query to answer it.\n")
	b.WriteString("Think step by step and double check your syntax.\n\n")
	b.WriteString(synthesisRules)
	b.WriteString("\n\n")
	b.WriteString(schemaInfo)
	b.WriteString("\n\n")
	b.WriteString(synthesisExamples)
	b.WriteString("\n\nNOW GENERATE A QUERY FOR THIS QUESTION:\n\n")
	b.WriteString("Question: " + question + "\n\n")
	b.WriteString("SPARQL Query (without prefixes):\n")

	return b.String()
}

// Synthesize generates and sanitizes a SPARQL query for the question.
func (s *Synthesizer) Synthesize(ctx context.Context, question string) (string, error) {
	raw, err := s.gen.Generate(ctx, s.BuildPrompt(question))
	if err != nil {
		return "", fmt.Errorf("failed to generate sparql query: %w", err)
	}

	query := SanitizeQuery(raw)
	if query == "" {
		return "", ErrEmptyQuery
	}

	log.Debug("synthesized sparql query", "bytes", len(query))

	return query, nil
}

// SanitizeQuery turns raw model output into an executable query body. It
// strips a single leading and trailing fenced-code-block marker when present
// and drops every line that declares a namespace prefix, since the executor
// supplies the canonical prefix block itself. Idempotent: sanitizing
// already-sanitized text returns it unchanged.
func SanitizeQuery(raw string) string {
	query := strings.TrimSpace(raw)

	// One leading fence, with or without a language tag.
	for _, fence := range []string{"```sparql", "```"} {
		if strings.HasPrefix(query, fence) {
			query = strings.TrimSpace(strings.TrimPrefix(query, fence))
			break
		}
	}
	if strings.HasSuffix(query, "```") {
		query = strings.TrimSpace(strings.TrimSuffix(query, "```"))
	}

	lines := strings.Split(query, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(line)), "PREFIX ") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
