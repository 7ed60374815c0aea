package fedlex

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

const (
	// NoticeNoResults is rendered when the graph returned no bindings at all.
	NoticeNoResults = "No results found in the Fedlex database."

	// NoticeNoApplicable is rendered when bindings existed but none survived
	// applicability filtering. Keeping the two notices distinct lets the
	// orchestrator tell "no data" apart from "data withheld by filter".
	NoticeNoApplicable = "No currently applicable laws found matching the criteria."

	// DefaultMaxFetchDocs bounds how many norms get a full-text fetch per
	// bundle. Unbounded inclusion would make latency and synthesis cost
	// proportional to however many laws a broad query matches.
	DefaultMaxFetchDocs = 3

	// maxConcurrentFetches bounds parallel document downloads per bundle.
	maxConcurrentFetches = 3
)

// FormatOptions controls bundle assembly.
type FormatOptions struct {
	// FilterApplicable keeps only norms whose status is currently_applicable.
	FilterApplicable bool
	// FetchText attaches the full legal text to included norms.
	FetchText bool
	// Language selects the text language for fetches and display.
	Language string
	// MaxFetchDocs caps full-text fetches; zero selects DefaultMaxFetchDocs.
	MaxFetchDocs int
	// Reference is the instant applicability is evaluated at; zero means now.
	Reference time.Time
}

// normFromBinding maps one SPARQL result row onto a NormCandidate. Variable
// names follow the synthesis prompt's SELECT clause.
func normFromBinding(b models.Binding) models.NormCandidate {
	return models.NormCandidate{
		WorkURI:          b["work"],
		ConsolidationURI: b["consolidation"],
		Title:            b["title"],
		SRNumber:         b["sr_number"],
		DocumentDate:     b["date"],
		ValidFrom:        b["dateApplicability"],
		ValidTo:          b["dateEndApplicability"],
		Language:         b["lang"],
	}
}

// DocumentURLs derives the browser URLs of a norm for every Swiss language
// from its Fedlex data URI.
func DocumentURLs(workURI string) map[string]string {
	base := strings.Replace(workURI, "https://fedlex.data.admin.ch", "https://www.fedlex.admin.ch", 1)
	urls := make(map[string]string, len(languageOrder))
	for _, code := range languageOrder {
		urls[LanguageNames[code]] = base + "/" + code
	}
	return urls
}

// FormatResults assembles graph bindings into a FederationBundle plus a
// textual rendering for downstream synthesis. Per-norm applicability is
// evaluated once; full texts are fetched concurrently across norms, each
// goroutine writing only its own entry, with a join before rendering.
// The only error returned is context cancellation, in which case any
// partially assembled bundle is discarded.
func FormatResults(ctx context.Context, result QueryResult, opts FormatOptions, fetcher TextFetcher) (*models.FederationBundle, string, error) {
	if result.Failed() {
		bundle := &models.FederationBundle{GeneratedQuery: result.Query, Empty: true}
		return bundle, fmt.Sprintf("Error querying Fedlex: %v", result.Err), nil
	}

	reference := opts.Reference
	if reference.IsZero() {
		reference = time.Now()
	}

	entries := make([]models.NormEntry, 0, len(result.Bindings))
	for _, binding := range result.Bindings {
		norm := normFromBinding(binding)
		applicability := EvaluateApplicability(norm.ValidFrom, norm.ValidTo, reference)
		if opts.FilterApplicable && !applicability.Applicable {
			continue
		}
		entries = append(entries, models.NormEntry{Norm: norm, Applicability: applicability})
	}

	bundle := &models.FederationBundle{
		GeneratedQuery:  result.Query,
		Entries:         entries,
		TotalBindings:   len(result.Bindings),
		ApplicableCount: len(entries),
	}

	if len(entries) == 0 {
		bundle.Empty = true
		notice := NoticeNoApplicable
		if bundle.TotalBindings == 0 {
			notice = NoticeNoResults
		}
		return bundle, renderHeader(bundle) + notice + "\n", nil
	}

	if opts.FetchText && fetcher != nil {
		if err := fetchTexts(ctx, entries, opts, fetcher); err != nil {
			return nil, "", err
		}
	}

	return bundle, renderBundle(bundle), nil
}

// fetchTexts downloads full texts for the first MaxFetchDocs entries,
// bounded by a semaphore. At most one fetch is attempted per norm.
func fetchTexts(ctx context.Context, entries []models.NormEntry, opts FormatOptions, fetcher TextFetcher) error {
	limit := opts.MaxFetchDocs
	if limit <= 0 {
		limit = DefaultMaxFetchDocs
	}
	if limit > len(entries) {
		limit = len(entries)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentFetches)

	for i := 0; i < limit; i++ {
		if entries[i].Norm.ConsolidationURI == "" {
			continue
		}
		// Cancellation checkpoint before starting the next norm's fetch.
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			text := fetcher.Fetch(ctx, entries[i].Norm.ConsolidationURI, opts.Language)
			entries[i].Text = &text
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Debug("fetched legal texts", "norms", limit)
	return nil
}

func renderHeader(bundle *models.FederationBundle) string {
	return fmt.Sprintf("**Generated SPARQL Query:**\n```sparql\n%s\n```\n\n", bundle.GeneratedQuery)
}

// renderBundle produces the human-readable rendering handed to the final
// synthesis call: per norm the title, SR number, dates, applicability
// status, cross-language links and, when fetched, the framed full text.
func renderBundle(bundle *models.FederationBundle) string {
	var b strings.Builder

	b.WriteString(renderHeader(bundle))
	fmt.Fprintf(&b, "**Found %d applicable result(s)** (out of %d total):\n\n",
		bundle.ApplicableCount, bundle.TotalBindings)

	for i, entry := range bundle.Entries {
		fmt.Fprintf(&b, "**Result %d:**\n", i+1)
		fmt.Fprintf(&b, "  - **Title**: %s\n", orNA(entry.Norm.Title))
		fmt.Fprintf(&b, "  - **SR Number**: %s\n", orNA(entry.Norm.SRNumber))
		fmt.Fprintf(&b, "  - **Date**: %s\n", orNA(entry.Norm.DocumentDate))
		if entry.Norm.Language != "" {
			fmt.Fprintf(&b, "  - **Language**: %s\n", entry.Norm.Language)
		}
		fmt.Fprintf(&b, "  - **Applicability Status**: %s\n", entry.Applicability.Status)
		fmt.Fprintf(&b, "  - **Details**: %s\n", orNA(entry.Applicability.Detail))

		if entry.Norm.WorkURI != "" {
			b.WriteString("\n  **Document Links (all languages):**\n")
			urls := DocumentURLs(entry.Norm.WorkURI)
			for _, code := range languageOrder {
				name := LanguageNames[code]
				fmt.Fprintf(&b, "  - [%s](%s)\n", name, urls[name])
			}
		}

		if text := entry.Text; text != nil {
			if text.Status == models.FetchSuccess {
				fmt.Fprintf(&b, "\n  Full legal text fetched (%d bytes) from %s\n\n", text.SizeBytes, text.SourceURL)
				b.WriteString("  **FULL LEGAL TEXT (XML - for citation and analysis):**\n")
				b.WriteString("  ```xml\n")
				b.WriteString("  " + text.Content + "\n")
				b.WriteString("  ```\n\n")
				b.WriteString("  IMPORTANT: The above XML contains the complete legal text. ")
				b.WriteString("Extract and cite specific articles, sections, and provisions ")
				b.WriteString("relevant to the question rather than paraphrasing.\n")
			} else {
				fmt.Fprintf(&b, "\n  Error fetching full text: %s\n", text.ErrorDetail)
			}
		}

		b.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
