package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"oscahub/internal/notification"
	"oscahub/internal/platform/config"
	"oscahub/internal/user"
	dErrors "oscahub/pkg/domain-errors"
)

// RemoteIdentity is the profile the external auth backend returns on a
// successful credential match. The role arrives as either a number or a
// label depending on the backend version.
type RemoteIdentity struct {
	Username  string   `json:"username"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Role      RoleCode `json:"role"`
}

// RoleCode tolerates the backend's mixed typing: some deployments answer
// with a numeric code, others with a label string.
type RoleCode string

func (c *RoleCode) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*c = RoleCode(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("role is neither string nor number: %s", data)
	}
	*c = RoleCode(asNumber.String())
	return nil
}

// MapRole translates the backend's role code to a portal role. Unknown
// codes fall back to the username convention: generated citizen accounts
// all carry the OSCA. prefix.
func MapRole(code RoleCode, username string) user.Role {
	switch strings.ToUpper(strings.TrimSpace(string(code))) {
	case "1", "ADMIN":
		return user.RoleAdmin
	case "SUPER ADMIN":
		return user.RoleRegistryAdmin
	case "5", "CITIZEN":
		return user.RoleCitizen
	}
	if strings.HasPrefix(strings.ToUpper(username), "OSCA.") {
		return user.RoleCitizen
	}
	return user.RoleAdmin
}

// RemoteClient talks to the external authentication backend. It serves two
// callers: the login service (credential check) and the notification
// dispatcher (account replication), which sees it as a Replicator.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ notification.Replicator = (*RemoteClient)(nil)

func NewRemoteClient(cfg config.RemoteAuth, logger *zap.Logger) *RemoteClient {
	return &RemoteClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Configured reports whether a backend URL is set; without one, login is
// local-only and replication is a no-op.
func (c *RemoteClient) Configured() bool { return c.baseURL != "" }

// Login checks credentials against the backend. A definitive "no such
// user / wrong password" answer returns (nil, nil); transport trouble and
// unexpected statuses return an error so the caller can fall back.
func (c *RemoteClient) Login(ctx context.Context, username, password string) (*RemoteIdentity, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "auth backend unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var identity RemoteIdentity
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&identity); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "auth backend sent malformed response")
		}
		if identity.Username == "" {
			identity.Username = username
		}
		return &identity, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("auth backend answered %d", resp.StatusCode))
	}
}

// Register mirrors a provisioned account to the backend. Best-effort: the
// dispatcher logs and drops failures.
func (c *RemoteClient) Register(ctx context.Context, event notification.AccountReplication) error {
	if !c.Configured() {
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"username":   event.Username,
		"password":   event.Password,
		"role":       event.RoleCode,
		"first_name": event.FirstName,
		"last_name":  event.LastName,
		"email":      event.Email,
		"phone":      event.Phone,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "auth backend unreachable")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("auth backend answered %d", resp.StatusCode))
	}
	return nil
}
