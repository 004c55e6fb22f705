// Package insight wraps the generative text API behind the admin
// dashboard digest. It is strictly best-effort: a missing key or a failed
// call yields a fixed notice, never an error.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"oscahub/internal/platform/config"
)

// Unavailable is returned whenever a summary cannot be produced.
const Unavailable = "AI insights are currently unavailable."

// Client posts prompts to a generative text API.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg config.InsightConfig, logger *zap.Logger) *Client {
	return &Client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Summarize turns a prompt into prose. Every failure path degrades to the
// fixed unavailable notice.
func (c *Client) Summarize(ctx context.Context, prompt string) string {
	if c.apiKey == "" || c.url == "" {
		return Unavailable
	}

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return Unavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Unavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("insight request failed", zap.Error(err))
		return Unavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("insight request rejected",
			zap.String("status", fmt.Sprintf("%d", resp.StatusCode)))
		return Unavailable
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		c.logger.Warn("insight response malformed", zap.Error(err))
		return Unavailable
	}
	if strings.TrimSpace(out.Text) == "" {
		return Unavailable
	}
	return out.Text
}
