// Package federation composes the answer pipeline: it routes each question,
// always gathers semantic passages, optionally queries the Fedlex knowledge
// graph, and synthesizes one citation-backed answer from whatever survived.
package federation

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/fedlex"
	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// NoticeNoLegislation is prepended to the bundle report when the graph
// branch produced nothing usable, so the final synthesis does not fabricate
// Swiss-specific claims. Callers rely on this exact text.
const NoticeNoLegislation = "No applicable Swiss federal legislation found in the Fedlex database."

// enrichmentLimit caps how much retrieved context is appended to the
// question before query synthesis.
const enrichmentLimit = 500

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the top-k semantically similar passages for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string, k int) ([]models.RetrievedPassage, error)
}

// GraphExecutor runs a structured query against the knowledge graph.
type GraphExecutor interface {
	Execute(ctx context.Context, query string) fedlex.QueryResult
}

// QuerySynthesizer generates an executable graph query from a question.
type QuerySynthesizer interface {
	Synthesize(ctx context.Context, question string) (string, error)
}

// Options tunes one Engine for its lifetime.
type Options struct {
	// RetrieveK is the passage count requested from the retriever.
	RetrieveK int
	// Language selects the legal-text language for fetches.
	Language string
	// FetchText attaches full legal texts to applicable norms.
	FetchText bool
	// FilterApplicable drops norms that are not currently in force.
	FilterApplicable bool
	// MaxFetchDocs caps full-text fetches per answer.
	MaxFetchDocs int
	// EnableFedlex can disable the graph branch entirely (e.g. offline runs).
	EnableFedlex bool
}

// DefaultOptions are the production settings.
func DefaultOptions() Options {
	return Options{
		RetrieveK:        4,
		Language:         "de",
		FetchText:        true,
		FilterApplicable: true,
		MaxFetchDocs:     fedlex.DefaultMaxFetchDocs,
		EnableFedlex:     true,
	}
}

// Engine owns the injected collaborators for the lifetime of the process:
// one shared model client, one retriever, one graph client. It holds no
// mutable cross-call state, so concurrent Answer calls are independent.
type Engine struct {
	gen       Generator
	retriever Retriever
	graph     GraphExecutor
	synth     QuerySynthesizer
	fetcher   fedlex.TextFetcher
	opts      Options
}

// NewEngine wires the pipeline together.
func NewEngine(gen Generator, retriever Retriever, graph GraphExecutor, synth QuerySynthesizer, fetcher fedlex.TextFetcher, opts Options) *Engine {
	return &Engine{
		gen:       gen,
		retriever: retriever,
		graph:     graph,
		synth:     synth,
		fetcher:   fetcher,
		opts:      opts,
	}
}

// Answer runs the full pipeline for one question. The route is decided
// exactly once and never revised; passages are retrieved regardless of
// route because the federated path feeds them into query synthesis as
// disambiguating context. Only loss of the text-generation capability is
// fatal; graph and fetch failures degrade into notices.
func (e *Engine) Answer(ctx context.Context, question string) (*models.FederatedAnswer, error) {
	route, err := Route(ctx, e.gen, question)
	if err != nil {
		return nil, err
	}

	passages := e.gatherPassages(ctx, question)
	passageContext := FormatPassages(passages)

	if route == models.RouteDocumentsOnly || !e.opts.EnableFedlex {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		answer, err := e.gen.Generate(ctx, documentsPrompt(passageContext, question))
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize answer: %w", err)
		}
		return &models.FederatedAnswer{
			Answer:    answer,
			Passages:  passages,
			Route:     route,
			Timestamp: time.Now().Format(time.RFC3339),
		}, nil
	}

	// The passages sharpen the generated query: concepts and article names
	// from the general corpus often name the Swiss laws worth searching.
	enriched := question + "\n\nContext from general documents: " + truncate(passageContext, enrichmentLimit)

	bundle, report, err := e.gatherLegislation(ctx, enriched)
	if err != nil {
		return nil, err
	}

	found := bundle != nil && !bundle.Empty
	if !found {
		log.Info("no swiss legislation found, degrading to documents-based analysis")
		report = NoticeNoLegislation +
			"\nAnalysis is based on general legal documents and international law.\n\n" + report
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answer, err := e.gen.Generate(ctx, combinedPrompt(passageContext, report, question))
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize answer: %w", err)
	}

	return &models.FederatedAnswer{
		Answer:             answer,
		Passages:           passages,
		Bundle:             bundle,
		BundleReport:       report,
		Route:              route,
		FedlexResultsFound: found,
		Timestamp:          time.Now().Format(time.RFC3339),
	}, nil
}

// gatherPassages retrieves semantic passages. Retrieval failure is not
// fatal: the pipeline continues with an explicit notice in the context.
func (e *Engine) gatherPassages(ctx context.Context, question string) []models.RetrievedPassage {
	passages, err := e.retriever.Retrieve(ctx, question, e.opts.RetrieveK)
	if err != nil {
		log.Warn("document retrieval failed, continuing without passages", "err", err)
		return nil
	}
	return passages
}

// gatherLegislation runs the graph branch: synthesize, execute, format.
// Synthesis and execution failures degrade to the sentinel bundle; only
// context cancellation is returned as an error.
func (e *Engine) gatherLegislation(ctx context.Context, enrichedQuestion string) (*models.FederationBundle, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	query, err := e.synth.Synthesize(ctx, enrichedQuestion)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		log.Warn("query synthesis failed, degrading graph branch", "err", err)
		bundle := &models.FederationBundle{Empty: true}
		return bundle, fmt.Sprintf("Error querying Fedlex: %v", err), nil
	}

	result := e.graph.Execute(ctx, query)
	if result.Failed() {
		log.Warn("graph query failed, degrading graph branch", "err", result.Err)
	}

	return fedlex.FormatResults(ctx, result, fedlex.FormatOptions{
		FilterApplicable: e.opts.FilterApplicable,
		FetchText:        e.opts.FetchText,
		Language:         e.opts.Language,
		MaxFetchDocs:     e.opts.MaxFetchDocs,
	}, e.fetcher)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
