package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oscahub/internal/platform/config"
	"oscahub/pkg/platform/sentinel"
)

func TestEmailClientSend(t *testing.T) {
	var captured emailPayload
	var gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewEmailClient(config.EmailGateway{
		URL:      server.URL,
		Username: "api-key",
		Password: "api-secret",
		From:     "osca@example.gov.ph",
		Timeout:  5 * time.Second,
	})

	err := client.Send(context.Background(), "juan@example.com", "Application update", "<p>Approved</p>")
	require.NoError(t, err)

	assert.Equal(t, "api-key", gotUser)
	assert.Equal(t, "api-secret", gotPass)
	assert.Equal(t, "osca@example.gov.ph", captured.From)
	assert.Equal(t, []string{"juan@example.com"}, captured.To)
	assert.Equal(t, "<p>Approved</p>", captured.HTMLBody)
}

func TestEmailClientNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewEmailClient(config.EmailGateway{URL: server.URL, Username: "key", Timeout: 5 * time.Second})
	assert.Error(t, client.Send(context.Background(), "juan@example.com", "s", "b"))
}

func TestEmailClientUnconfigured(t *testing.T) {
	client := NewEmailClient(config.EmailGateway{})
	assert.False(t, client.Configured())
	assert.ErrorIs(t, client.Send(context.Background(), "a@b.c", "s", "b"), sentinel.ErrUnavailable)
}
