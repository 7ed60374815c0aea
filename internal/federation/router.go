package federation

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// Route classifies a question into a retrieval plan. The model is expected
// to answer with the exact documents-only token; anything else, including
// hedged or multi-word output, maps to the federated plan so the pipeline
// over-includes Swiss-context results rather than missing them. A model
// failure here is fatal for the question.
func Route(ctx context.Context, gen Generator, question string) (models.RouteDecision, error) {
	out, err := gen.Generate(ctx, routerPrompt(question))
	if err != nil {
		return "", fmt.Errorf("failed to route question: %w", err)
	}

	decision := strings.ToUpper(strings.TrimSpace(out))
	if decision == string(models.RouteDocumentsOnly) {
		log.Debug("routed question", "route", models.RouteDocumentsOnly)
		return models.RouteDocumentsOnly, nil
	}

	if decision != string(models.RouteFederated) {
		log.Debug("unrecognized route output, defaulting to federated", "output", decision)
	}
	return models.RouteFederated, nil
}
