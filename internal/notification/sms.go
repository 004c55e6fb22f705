package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"oscahub/internal/platform/config"
	"oscahub/pkg/platform/sentinel"
)

// smsErrorCodes maps the gateway's negative status integers to readable
// causes, matching the provider's published table.
var smsErrorCodes = map[int64]string{
	-1: "invalid number",
	-2: "invalid credentials",
	-3: "insufficient balance",
	-4: "maximum messages per day reached",
	-5: "invalid message content",
}

// SMSClient talks to the HTTP SMS gateway. The provider takes a GET request
// with query parameters and answers with a bare integer body: positive is
// the accepted message ID, negative is an error code, anything else is a
// failure.
type SMSClient struct {
	cfg        config.SMSGateway
	httpClient *http.Client
}

func NewSMSClient(cfg config.SMSGateway) *SMSClient {
	return &SMSClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether the gateway has credentials to send with.
func (c *SMSClient) Configured() bool {
	return c.cfg.URL != "" && c.cfg.Username != ""
}

// Send delivers one SMS. The destination is normalized to the gateway's
// 63-prefixed format before dispatch.
func (c *SMSClient) Send(ctx context.Context, phone, message string) error {
	if !c.Configured() {
		return sentinel.ErrUnavailable
	}

	number, ok := NormalizePhone(phone)
	if !ok {
		return fmt.Errorf("sms: destination %q is not a valid mobile number", phone)
	}

	q := url.Values{}
	q.Set("1", number)
	q.Set("2", message)
	q.Set("3", c.cfg.Password)
	q.Set("passwd", c.cfg.Password)
	q.Set("email", c.cfg.Username)
	// Fixed provider flags: plain-text message, default sender ID.
	q.Set("mtype", "N")
	q.Set("mtype2", "N")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return fmt.Errorf("sms: read gateway response: %w", err)
	}

	return interpretSMSResponse(strings.TrimSpace(string(body)))
}

// interpretSMSResponse decodes the gateway's bare-integer protocol.
func interpretSMSResponse(body string) error {
	if body == "" {
		return fmt.Errorf("sms: empty gateway response")
	}
	code, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return fmt.Errorf("sms: non-numeric gateway response %q", body)
	}
	if code > 0 {
		// Positive code is the accepted message ID.
		return nil
	}
	if reason, ok := smsErrorCodes[code]; ok {
		return fmt.Errorf("sms: gateway error %d: %s", code, reason)
	}
	return fmt.Errorf("sms: gateway error %d", code)
}

// NormalizePhone converts a local mobile number to the 63-prefixed format
// the gateway requires: the last ten digits prefixed with the country code.
// "09171234567" and "+639171234567" both become "639171234567".
func NormalizePhone(phone string) (string, bool) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 {
		return "", false
	}
	return "63" + d[len(d)-10:], true
}
