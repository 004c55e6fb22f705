package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"oscahub/internal/platform/config"
	"oscahub/pkg/platform/sentinel"
)

// EmailClient talks to the HTTP email gateway: JSON POST with an HTML body
// and Basic Auth. Any 2xx response counts as delivered.
type EmailClient struct {
	cfg        config.EmailGateway
	httpClient *http.Client
}

func NewEmailClient(cfg config.EmailGateway) *EmailClient {
	return &EmailClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether the gateway has credentials to send with.
func (c *EmailClient) Configured() bool {
	return c.cfg.URL != "" && c.cfg.Username != ""
}

type emailPayload struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"html_body"`
}

// Send delivers one HTML email.
func (c *EmailClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !c.Configured() {
		return sentinel.ErrUnavailable
	}

	payload, err := json.Marshal(emailPayload{
		From:     c.cfg.From,
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("email: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email: gateway returned status %d", resp.StatusCode)
	}
	return nil
}
