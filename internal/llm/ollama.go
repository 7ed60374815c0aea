package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// DefaultTimeout bounds one model inference call.
const DefaultTimeout = 120 * time.Second

// OllamaLLM handles interactions with the Ollama LLM API. One instance is
// constructed at startup and shared read-only by the routing, query
// synthesis and answer synthesis callers.
type OllamaLLM struct {
	Client  *api.Client
	Model   string
	Timeout time.Duration
}

// NewOllamaLLM creates a new Ollama LLM client. An empty host falls back to
// the OLLAMA_HOST environment configuration.
func NewOllamaLLM(host string, model string) (*OllamaLLM, error) {
	hostURL := envconfig.Host()
	if host != "" {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ollama host: %w", err)
		}
		hostURL = parsed
	}
	client := api.NewClient(hostURL, http.DefaultClient)

	return &OllamaLLM{
		Client:  client,
		Model:   model,
		Timeout: DefaultTimeout,
	}, nil
}

// Generate runs one non-streamed-to-caller inference and returns the full
// response text. The call is bounded by the client timeout; a timeout or
// unreachable backend surfaces as an error.
func (o *OllamaLLM) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	req := api.GenerateRequest{
		Model:  o.Model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": 0.0,
			"num_predict": 2048,
		},
	}

	var responseBuilder strings.Builder

	err := o.Client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := responseBuilder.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	return responseBuilder.String(), nil
}
