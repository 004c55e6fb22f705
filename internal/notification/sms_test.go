package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oscahub/internal/platform/config"
	"oscahub/pkg/platform/sentinel"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09171234567", "639171234567", true},
		{"+639171234567", "639171234567", true},
		{"639171234567", "639171234567", true},
		{"0917-123-4567", "639171234567", true},
		{"0917 123 4567", "639171234567", true},
		{"12345", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestInterpretSMSResponse(t *testing.T) {
	t.Run("positive code is the accepted message id", func(t *testing.T) {
		assert.NoError(t, interpretSMSResponse("18754"))
	})

	t.Run("known negative codes map to readable causes", func(t *testing.T) {
		err := interpretSMSResponse("-2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown negative code still errors", func(t *testing.T) {
		assert.Error(t, interpretSMSResponse("-99"))
	})

	t.Run("zero is not success", func(t *testing.T) {
		assert.Error(t, interpretSMSResponse("0"))
	})

	t.Run("empty and non-numeric bodies error", func(t *testing.T) {
		assert.Error(t, interpretSMSResponse(""))
		assert.Error(t, interpretSMSResponse("<html>busted</html>"))
	})
}

func TestSMSClientSend(t *testing.T) {
	var captured url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte("18754"))
	}))
	defer server.Close()

	client := NewSMSClient(config.SMSGateway{
		URL:      server.URL,
		Username: "osca@example.gov.ph",
		Password: "gateway-secret",
		Timeout:  5 * time.Second,
	})

	err := client.Send(context.Background(), "09171234567", "Good day!")
	require.NoError(t, err)

	assert.Equal(t, "639171234567", captured.Get("1"))
	assert.Equal(t, "Good day!", captured.Get("2"))
	assert.Equal(t, "osca@example.gov.ph", captured.Get("email"))
	assert.Equal(t, "gateway-secret", captured.Get("passwd"))
	assert.Equal(t, "N", captured.Get("mtype"))
}

func TestSMSClientGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-3"))
	}))
	defer server.Close()

	client := NewSMSClient(config.SMSGateway{
		URL:      server.URL,
		Username: "osca@example.gov.ph",
		Timeout:  5 * time.Second,
	})

	err := client.Send(context.Background(), "09171234567", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestSMSClientUnconfigured(t *testing.T) {
	client := NewSMSClient(config.SMSGateway{})
	assert.False(t, client.Configured())
	assert.ErrorIs(t, client.Send(context.Background(), "09171234567", "hi"), sentinel.ErrUnavailable)
}

func TestSMSClientRejectsShortNumbers(t *testing.T) {
	client := NewSMSClient(config.SMSGateway{URL: "http://gateway.invalid", Username: "u"})
	assert.Error(t, client.Send(context.Background(), "12345", "hi"))
}
