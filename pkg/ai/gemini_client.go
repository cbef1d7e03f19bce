package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gardenguru/pkg/apperr"
)

const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

type gemini struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

// NewGemini calls the Generative Language generateContent REST method.
func NewGemini(endpoint, key, model string, timeout time.Duration) Client {
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &gemini{endpoint: strings.TrimRight(endpoint, "/"), key: key, model: model, httpc: httpClient(timeout)}
}

func (c *gemini) Generate(ctx context.Context, prompt string) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	reqBody := map[string]any{
		"contents": []content{{Parts: []part{{Text: prompt}}}},
	}
	b, _ := json.Marshal(reqBody)

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, url.PathEscape(c.model), url.QueryEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", apperr.Upstream("build generateContent request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", apperr.Upstream("generateContent request failed", err)
	}
	defer resp.Body.Close()

	var out struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Upstream(fmt.Sprintf("decode generateContent (%s)", resp.Status), err)
	}
	if resp.StatusCode/100 != 2 {
		msg := resp.Status
		if out.Error != nil && out.Error.Message != "" {
			msg += ": " + out.Error.Message
		}
		return "", apperr.Upstream("generateContent: "+msg, nil)
	}
	if len(out.Candidates) == 0 {
		return "", apperr.Upstream("generateContent: no candidates", nil)
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
