package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oscahub/internal/platform/config"
)

func TestSummarize(t *testing.T) {
	t.Run("missing api key degrades to the fixed notice", func(t *testing.T) {
		client := New(config.InsightConfig{URL: "http://api.invalid"}, zap.NewNop())
		assert.Equal(t, Unavailable, client.Summarize(context.Background(), "anything"))
	})

	t.Run("successful call returns the model text", func(t *testing.T) {
		var captured generateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(generateResponse{Text: "Fourteen applications pending."})
		}))
		defer server.Close()

		client := New(config.InsightConfig{
			URL:     server.URL,
			APIKey:  "test-key",
			Model:   "text-small",
			Timeout: 5 * time.Second,
		}, zap.NewNop())

		got := client.Summarize(context.Background(), "Summarize the queue.")
		assert.Equal(t, "Fourteen applications pending.", got)
		assert.Equal(t, "text-small", captured.Model)
		assert.Equal(t, "Summarize the queue.", captured.Prompt)
	})

	t.Run("api rejection degrades to the fixed notice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := New(config.InsightConfig{URL: server.URL, APIKey: "test-key", Timeout: 5 * time.Second}, zap.NewNop())
		assert.Equal(t, Unavailable, client.Summarize(context.Background(), "prompt"))
	})

	t.Run("blank model output degrades to the fixed notice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(generateResponse{Text: "  "})
		}))
		defer server.Close()

		client := New(config.InsightConfig{URL: server.URL, APIKey: "test-key", Timeout: 5 * time.Second}, zap.NewNop())
		assert.Equal(t, Unavailable, client.Summarize(context.Background(), "prompt"))
	})
}
