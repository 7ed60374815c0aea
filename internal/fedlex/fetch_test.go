package fedlex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// fedlexStub serves both the SPARQL endpoint (any other path) and the
// document store (/doc) from one test server.
func fedlexStub(t *testing.T, docBody string, docDelay time.Duration, manifestationFound bool) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/doc" {
			time.Sleep(docDelay)
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(docBody))
			return
		}

		require.NoError(t, r.ParseForm())
		query := r.PostFormValue("query")
		assert.Contains(t, query, "jolux:isEmbodiedBy")

		if !manifestationFound {
			w.Write([]byte(`{"results":{"bindings":[]}}`))
			return
		}
		fmt.Fprintf(w, `{"results":{"bindings":[{"download":{"type":"uri","value":"%s/doc"}}]}}`, server.URL)
	}))
	return server
}

func TestFetch_Success(t *testing.T) {
	body := "<law><article n=\"1\">Everyone has rights.</article></law>"
	server := fedlexStub(t, body, 0, true)
	defer server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, time.Second, 0)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "de")

	require.Equal(t, models.FetchSuccess, got.Status)
	assert.Equal(t, body, got.Content)
	assert.Equal(t, len(body), got.SizeBytes)
	assert.Equal(t, server.URL+"/doc", got.SourceURL)
	assert.Equal(t, "de", got.Language)
}

func TestFetch_NoManifestationForLanguage(t *testing.T) {
	server := fedlexStub(t, "", 0, false)
	defer server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, time.Second, 0)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "rm")

	require.Equal(t, models.FetchFailed, got.Status)
	assert.Contains(t, got.ErrorDetail, `no XML document found for language "rm"`)
	assert.Empty(t, got.Content)
}

func TestFetch_DocumentTimeout(t *testing.T) {
	server := fedlexStub(t, "slow body", 500*time.Millisecond, true)
	defer server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, 50*time.Millisecond, 0)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "de")

	require.Equal(t, models.FetchFailed, got.Status)
	assert.Contains(t, got.ErrorDetail, "HTTP request error")
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/doc" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"results":{"bindings":[{"download":{"type":"uri","value":"%s/doc"}}]}}`, server.URL)
	}))
	defer server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, time.Second, 0)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "de")

	require.Equal(t, models.FetchFailed, got.Status)
	assert.Contains(t, got.ErrorDetail, "404")
}

func TestFetch_GraphUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, time.Second, 0)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "de")

	require.Equal(t, models.FetchFailed, got.Status)
	assert.Contains(t, got.ErrorDetail, "manifestation query failed")
}

func TestFetch_BodyCapped(t *testing.T) {
	body := strings.Repeat("x", 4096)
	server := fedlexStub(t, body, 0, true)
	defer server.Close()

	graph := NewClient(server.URL, time.Second)
	fetcher := NewFetcher(graph, time.Second, 1024)

	got := fetcher.Fetch(context.Background(), "https://fedlex.data.admin.ch/eli/cc/1999/404", "de")

	require.Equal(t, models.FetchSuccess, got.Status)
	assert.Len(t, got.Content, 1024)
	assert.Equal(t, 4096, got.SizeBytes)
}

func TestManifestationQuery_Shape(t *testing.T) {
	query := manifestationQuery("https://fedlex.data.admin.ch/eli/cc/1999/404", "fr")

	assert.Contains(t, query, "<https://fedlex.data.admin.ch/eli/cc/1999/404> jolux:isRealizedBy")
	assert.Contains(t, query, "language/FRA")
	assert.Contains(t, query, "file-type/XML")
	assert.Contains(t, query, "LIMIT 1")
}

func TestManifestationQuery_UnknownLanguageDefaultsToGerman(t *testing.T) {
	query := manifestationQuery("https://fedlex.data.admin.ch/eli/cc/1999/404", "xx")
	assert.Contains(t, query, "language/DEU")
}
