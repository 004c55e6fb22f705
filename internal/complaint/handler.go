package complaint

import (
	"context"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/httputil"
)

// ComplaintService defines the operations the handler needs.
type ComplaintService interface {
	Submit(ctx context.Context, input SubmitInput) (Complaint, error)
	Resolve(ctx context.Context, complaintID id.ComplaintID) (Complaint, error)
	List(ctx context.Context) ([]Complaint, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]Complaint, error)
}

type Handler struct {
	service ComplaintService
	logger  *zap.Logger
}

func NewHandler(service ComplaintService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts complaint endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/complaints", h.HandleSubmit)
	r.Get("/complaints", h.HandleList)
	r.Patch("/complaints/{id}/resolve", h.HandleResolve)
}

// SubmitRequest is the transport shape of a complaint submission.
type SubmitRequest struct {
	UserID  string `json:"userId"`
	Subject string `json:"subject"`
	Details string `json:"details"`
}

func (r SubmitRequest) ToInput() (SubmitInput, error) {
	userID, err := id.ParseUserID(r.UserID)
	if err != nil {
		return SubmitInput{}, err
	}
	if !govalidator.StringLength(r.Subject, "1", "200") {
		return SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "subject is required")
	}
	if !govalidator.StringLength(r.Details, "1", "4000") {
		return SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "details are required")
	}
	return SubmitInput{UserID: userID, Subject: r.Subject, Details: r.Details}, nil
}

// HandleSubmit handles POST /complaints.
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

	c, err := h.service.Submit(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, c)
}

// HandleList handles GET /complaints. A userId query parameter narrows
// the listing to one citizen; without it the admin console gets all of
// them, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var (
		out []Complaint
		err error
	)
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, parseErr := id.ParseUserID(raw)
		if parseErr != nil {
			httputil.WriteError(w, parseErr)
			return
		}
		out, err = h.service.ListByUser(r.Context(), userID)
	} else {
		out, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if out == nil {
		out = []Complaint{}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleResolve handles PATCH /complaints/{id}/resolve.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	complaintID, err := id.ParseComplaintID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Resolve(r.Context(), complaintID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, c)
}
