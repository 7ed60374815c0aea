package fedlex

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// DefaultQueryTimeout bounds a single SPARQL round trip.
const DefaultQueryTimeout = 30 * time.Second

// Client executes SPARQL queries against the Fedlex endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
}

// NewClient creates a Fedlex SPARQL client. An empty endpoint selects the
// public Fedlex endpoint; a zero timeout selects DefaultQueryTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "pro-botno/1.0 (legal research assistant)"),
		endpoint: endpoint,
	}
}

// QueryResult carries the outcome of one query execution. Transport and
// endpoint failures are reported through Err rather than raised, so callers
// must check Failed before using Bindings.
type QueryResult struct {
	Query    string
	Bindings []models.Binding
	Err      error
}

// Failed reports whether the execution produced no usable bindings.
func (r QueryResult) Failed() bool {
	return r.Err != nil
}

// sparqlResponse is the SPARQL 1.1 JSON results form.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// Execute prepends the canonical prefix block, submits the query and decodes
// the bindings. One attempt per query; no retries.
func (c *Client) Execute(ctx context.Context, query string) QueryResult {
	full := Prefixes + "\n" + query

	log.Debug("executing sparql query", "endpoint", c.endpoint, "bytes", len(full))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/sparql-results+json").
		SetFormData(map[string]string{"query": full}).
		Post(c.endpoint)
	if err != nil {
		return QueryResult{Query: query, Err: fmt.Errorf("failed to reach sparql endpoint: %w", err)}
	}
	if resp.IsError() {
		return QueryResult{Query: query, Err: fmt.Errorf("sparql endpoint returned %s", resp.Status())}
	}

	var decoded sparqlResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return QueryResult{Query: query, Err: fmt.Errorf("failed to decode sparql results: %w", err)}
	}

	bindings := make([]models.Binding, 0, len(decoded.Results.Bindings))
	for _, row := range decoded.Results.Bindings {
		binding := make(models.Binding, len(row))
		for name, cell := range row {
			binding[name] = cell.Value
		}
		bindings = append(bindings, binding)
	}

	log.Debug("sparql query returned", "bindings", len(bindings))

	return QueryResult{Query: query, Bindings: bindings}
}
