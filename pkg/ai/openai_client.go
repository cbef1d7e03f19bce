// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gardenguru/pkg/apperr"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

// NewOpenAI talks to any OpenAI-compatible /v1/chat/completions endpoint.
func NewOpenAI(endpoint, key, model string, timeout time.Duration) Client {
	return &openAI{endpoint: endpoint, key: key, model: model, httpc: httpClient(timeout)}
}

func (c *openAI) Generate(ctx context.Context, prompt string) (string, error) {
	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are an expert plant care specialist."},
			{"role": "user", "content": prompt},
		},
		Temperature: 0.2,
	}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", apperr.Upstream("build chat request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", apperr.Upstream("chat completion request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", apperr.Upstream(fmt.Sprintf("chat completion: %s", resp.Status), nil)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Upstream("decode chat completion", err)
	}
	if len(out.Choices) == 0 {
		return "", apperr.Upstream("chat completion: no choices", nil)
	}
	return out.Choices[0].Message.Content, nil
}
