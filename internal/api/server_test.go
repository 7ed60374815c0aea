package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnswerer struct {
	answer   *models.FederatedAnswer
	err      error
	question string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (*models.FederatedAnswer, error) {
	f.question = question
	return f.answer, f.err
}

func postAnswer(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/answer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router := NewRouter(&fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleAnswer_Success(t *testing.T) {
	answerer := &fakeAnswerer{answer: &models.FederatedAnswer{
		Answer:             "Under Art. 3 Asylgesetz...",
		Route:              models.RouteFederated,
		FedlexResultsFound: true,
	}}
	router := NewRouter(answerer)

	w := postAnswer(t, router, `{"question":"Is the Asylgesetz in force?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Is the Asylgesetz in force?", answerer.question)

	var got models.FederatedAnswer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Under Art. 3 Asylgesetz...", got.Answer)
	assert.Equal(t, models.RouteFederated, got.Route)
	assert.True(t, got.FedlexResultsFound)
}

func TestHandleAnswer_MissingQuestion(t *testing.T) {
	router := NewRouter(&fakeAnswerer{})

	for _, body := range []string{`{}`, `{"question":""}`, `not json`} {
		w := postAnswer(t, router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"question is required"}`, w.Body.String(), "body %q", body)
	}
}

func TestHandleAnswer_PipelineFailure(t *testing.T) {
	answerer := &fakeAnswerer{err: errors.New("failed to route question: model unavailable")}
	router := NewRouter(answerer)

	w := postAnswer(t, router, `{"question":"anything"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "model unavailable")
}
