package fedlex

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

const (
	// DefaultFetchTimeout bounds one full-text document download. It is
	// deliberately separate from the graph query timeout: document bodies
	// can be large.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxFetchBytes caps how much of a document body is kept.
	DefaultMaxFetchBytes = 2 << 20
)

// fetchUserAgent identifies document downloads to the remote store.
const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// TextFetcher retrieves a norm's full text for a language. The concrete
// Fetcher talks to Fedlex; tests substitute fakes.
type TextFetcher interface {
	Fetch(ctx context.Context, consolidationURI, language string) models.FetchedText
}

// Fetcher resolves a norm's XML manifestation URL through a secondary
// SPARQL query and downloads the document body. Every failure mode lands in
// the returned FetchedText rather than an error: no manifestation for the
// language, empty resolution, transport failure, non-success HTTP status.
type Fetcher struct {
	graph    *Client
	http     *resty.Client
	maxBytes int
}

// NewFetcher creates a document fetcher sharing the given graph client for
// manifestation resolution. Zero values select the package defaults.
func NewFetcher(graph *Client, timeout time.Duration, maxBytes int) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFetchBytes
	}
	return &Fetcher{
		graph: graph,
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", fetchUserAgent),
		maxBytes: maxBytes,
	}
}

// manifestationQuery resolves the XML download URL of a consolidation in
// one language, limited to a single result.
func manifestationQuery(consolidationURI, language string) string {
	return fmt.Sprintf(`SELECT ?download WHERE {
    <%s> jolux:isRealizedBy ?expression .

    ?expression jolux:language <%s> ;
                jolux:isEmbodiedBy ?manifestation .

    ?manifestation jolux:format <%s> ;
                   jolux:isExemplifiedBy ?download .
}
LIMIT 1`, consolidationURI, LanguageURI(language), FormatXML)
}

// Fetch retrieves the full legal text of a consolidation in the requested
// language. One attempt, no retries, no caching.
func (f *Fetcher) Fetch(ctx context.Context, consolidationURI, language string) models.FetchedText {
	failed := func(detail string) models.FetchedText {
		return models.FetchedText{
			ConsolidationURI: consolidationURI,
			Language:         language,
			Status:           models.FetchFailed,
			ErrorDetail:      detail,
		}
	}

	result := f.graph.Execute(ctx, manifestationQuery(consolidationURI, language))
	if result.Failed() {
		return failed(fmt.Sprintf("manifestation query failed: %v", result.Err))
	}
	if len(result.Bindings) == 0 {
		return failed(fmt.Sprintf("no XML document found for language %q", language))
	}

	downloadURL := result.Bindings[0]["download"]
	if downloadURL == "" {
		return failed("download URL missing from manifestation result")
	}

	log.Debug("fetching legal text", "url", downloadURL, "language", language)

	resp, err := f.http.R().SetContext(ctx).Get(downloadURL)
	if err != nil {
		return failed(fmt.Sprintf("HTTP request error: %v", err))
	}
	if resp.IsError() {
		return failed(fmt.Sprintf("HTTP request returned %s", resp.Status()))
	}

	body := resp.Body()
	content := string(body)
	if len(content) > f.maxBytes {
		content = content[:f.maxBytes]
	}

	return models.FetchedText{
		ConsolidationURI: consolidationURI,
		SourceURL:        downloadURL,
		Language:         language,
		Content:          content,
		SizeBytes:        len(body),
		Status:           models.FetchSuccess,
	}
}
