package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"oscahub/internal/registry"
	"oscahub/pkg/platform/httputil"
)

// Service defines the registry operations the handler needs.
type Service interface {
	VerifyIdentity(ctx context.Context, id string) (registry.Verification, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registry/verify/{id}", h.HandleVerify)
}

// HandleVerify handles GET /registry/verify/{id}.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.VerifyIdentity(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
