package models

// TextChunk represents a chunk of text from an ingested legal document
type TextChunk struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float64 `json:"embedding"`
}

// Metadata contains information about the text chunk
type Metadata struct {
	Source  string `json:"source"`
	Page    int    `json:"page"`
	Section string `json:"section,omitempty"`
	Title   string `json:"title,omitempty"`
}

// RetrievedPassage is a single passage returned by the semantic retriever.
type RetrievedPassage struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// RouteDecision selects which knowledge sources a question consults.
type RouteDecision string

const (
	// RouteDocumentsOnly answers from the general document index alone.
	RouteDocumentsOnly RouteDecision = "RAG"
	// RouteFederated combines the document index with Swiss federal
	// legislation from Fedlex. This is the fallback for any ambiguous
	// or unparseable router output.
	RouteFederated RouteDecision = "BOTH"
)

// Binding is one row of a SPARQL result, variable name to plain value.
type Binding map[string]string

// NormCandidate is a single piece of legislation surfaced by a graph query.
type NormCandidate struct {
	WorkURI          string `json:"work_uri"`
	ConsolidationURI string `json:"consolidation_uri"`
	Title            string `json:"title"`
	SRNumber         string `json:"sr_number"`
	DocumentDate     string `json:"document_date"`
	ValidFrom        string `json:"valid_from"`
	ValidTo          string `json:"valid_to"`
	Language         string `json:"language,omitempty"`
}

// ApplicabilityStatus classifies a norm's legal status at a reference instant.
type ApplicabilityStatus string

const (
	CurrentlyApplicable ApplicabilityStatus = "currently_applicable"
	NotYetApplicable    ApplicabilityStatus = "not_yet_applicable"
	Expired             ApplicabilityStatus = "expired"
	NoDatesAvailable    ApplicabilityStatus = "no_dates_available"
	ApplicabilityError  ApplicabilityStatus = "error"
)

// ApplicabilityResult is the outcome of evaluating a norm's validity interval.
type ApplicabilityResult struct {
	Status     ApplicabilityStatus `json:"status"`
	Applicable bool                `json:"is_applicable"`
	Detail     string              `json:"detail"`
}

// FetchStatus reports the outcome of a full-text document fetch.
type FetchStatus string

const (
	FetchSuccess FetchStatus = "success"
	FetchFailed  FetchStatus = "error"
)

// FetchedText is one attempt to retrieve a norm's full text.
type FetchedText struct {
	ConsolidationURI string      `json:"consolidation_uri"`
	SourceURL        string      `json:"source_url,omitempty"`
	Language         string      `json:"language"`
	Content          string      `json:"content,omitempty"`
	SizeBytes        int         `json:"size_bytes,omitempty"`
	Status           FetchStatus `json:"status"`
	ErrorDetail      string      `json:"error_detail,omitempty"`
}

// NormEntry groups a norm with its evaluated applicability and, when
// full-text inclusion is enabled, the fetched document.
type NormEntry struct {
	Norm          NormCandidate       `json:"norm"`
	Applicability ApplicabilityResult `json:"applicability"`
	Text          *FetchedText        `json:"text,omitempty"`
}

// FederationBundle aggregates everything the graph branch produced for one
// question. Empty marks the sentinel bundle returned when no binding
// survives applicability filtering, so callers can tell "no data" apart
// from "data withheld".
type FederationBundle struct {
	GeneratedQuery  string      `json:"generated_query"`
	Entries         []NormEntry `json:"entries"`
	TotalBindings   int         `json:"total_bindings"`
	ApplicableCount int         `json:"applicable_count"`
	Empty           bool        `json:"empty"`
}

// FederatedAnswer is the terminal artifact returned to callers. The
// BundleReport carries the rendered graph-branch text, including any
// degradation notice, for audit and display.
type FederatedAnswer struct {
	Answer             string             `json:"answer"`
	Passages           []RetrievedPassage `json:"passages"`
	Bundle             *FederationBundle  `json:"bundle,omitempty"`
	BundleReport       string             `json:"bundle_report,omitempty"`
	Route              RouteDecision      `json:"route_decision"`
	FedlexResultsFound bool               `json:"fedlex_results_found"`
	Timestamp          string             `json:"timestamp"`
}
