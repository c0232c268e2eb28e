// Package gemini implements the model-backed insight path against the
// Generative Language HTTP API. The endpoint is treated as unreliable and
// rate limited: one call per analysis attempt, no retry, and every failure
// degrades to the deterministic mock synthesizer.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL, model, apiKey string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a single prompt and returns the raw text of the
// first candidate.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var response generateResponse
	if err := c.postJSON(ctx, path, request, &response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate: empty candidate list")
	}

	var builder strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		builder.WriteString(p.Text)
	}
	return strings.TrimSpace(builder.String()), nil
}
