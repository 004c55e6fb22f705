package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"oscahub/internal/application"
	"oscahub/internal/application/service"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/httputil"
)

// Service defines the lifecycle operations the handler needs.
type Service interface {
	Submit(ctx context.Context, input service.SubmitInput) (application.Application, error)
	UpdateStatus(ctx context.Context, appID id.ApplicationID, newStatus application.Status, reason string) error
	IssueIDCard(ctx context.Context, appID id.ApplicationID) error
	List(ctx context.Context) ([]application.Application, error)
}

// Handler wires application endpoints to the lifecycle service.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts application endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.HandleSubmit)
	r.Get("/applications", h.HandleList)
	r.Patch("/applications/{id}/status", h.HandleUpdateStatus)
	r.Post("/applications/{id}/issue-id", h.HandleIssueID)
}

// HandleSubmit handles POST /applications.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[SubmitRequest](w, r, h.logger)
	if !ok {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.service.Submit(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, app)
}

// HandleList handles GET /applications (admin console, newest first).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if apps == nil {
		apps = []application.Application{}
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

// HandleUpdateStatus handles PATCH /applications/{id}/status.
// Unknown IDs answer 202 like any other: the service treats them as a
// silent no-op by design.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.Decode[UpdateStatusRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), appID, application.Status(req.Status), req.Reason); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": req.Status})
}

// HandleIssueID handles POST /applications/{id}/issue-id.
func (h *Handler) HandleIssueID(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.IssueIDCard(r.Context(), appID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": string(application.StatusIssued)})
}
