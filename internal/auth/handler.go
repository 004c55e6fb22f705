package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"oscahub/internal/user"
	dErrors "oscahub/pkg/domain-errors"
	"oscahub/pkg/platform/httputil"
)

// LoginService is what the handler needs from the login flow.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type Handler struct {
	service LoginService
	logger  *zap.Logger
}

func NewHandler(service LoginService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// LoginRequest is the transport shape of a credential check.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login returns. The token is a bearer
// JWT; the user block drives the frontend's role routing.
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt string    `json:"expiresAt"`
	User      user.User `json:"user"`
}

// HandleLogin handles POST /auth/login. Bad credentials are 401 with a
// generic description: which tier rejected them is not the caller's
// business.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if result == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     result.Token,
		SessionID: result.Session.ID.String(),
		ExpiresAt: result.Session.ExpiresAt.Format(time.RFC3339),
		User:      result.User,
	})
}
