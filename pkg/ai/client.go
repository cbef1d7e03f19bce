// pkg/ai/client.go

package ai

import (
	"context"
	"net/http"
	"time"
)

// Client sends a prompt to a generative text model and returns the raw
// completion text. There is no structured-output guarantee.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New picks an implementation for provider. It returns nil when the provider
// needs a key and none is set, so callers can report a configuration error.
func New(provider, endpoint, key, model string, timeout time.Duration) Client {
	switch provider {
	case "mock":
		return NewMock()
	case "openai":
		if key == "" || endpoint == "" {
			return nil
		}
		return NewOpenAI(endpoint, key, model, timeout)
	default:
		if key == "" {
			return nil
		}
		return NewGemini(endpoint, key, model, timeout)
	}
}

func httpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
