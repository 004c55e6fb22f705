// Package admin serves the console-only views: the citizen masterlist and
// the AI applications digest.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"oscahub/internal/application"
	"oscahub/internal/user"
	"oscahub/pkg/platform/httputil"
)

// Summarizer produces the dashboard digest; it never fails, only degrades.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) string
}

// ApplicationLister feeds the digest prompt.
type ApplicationLister interface {
	List(ctx context.Context) ([]application.Application, error)
}

type Handler struct {
	users   user.Store
	apps    ApplicationLister
	insight Summarizer
	logger  *zap.Logger
}

func NewHandler(users user.Store, apps ApplicationLister, insight Summarizer, logger *zap.Logger) *Handler {
	return &Handler{users: users, apps: apps, insight: insight, logger: logger}
}

// Register mounts admin console endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/masterlist", h.HandleMasterlist)
	r.Get("/admin/insight", h.HandleInsight)
}

// HandleMasterlist handles GET /admin/masterlist: every approved citizen,
// the console's registry of record.
func (h *Handler) HandleMasterlist(w http.ResponseWriter, r *http.Request) {
	citizens, err := h.users.ListByRole(r.Context(), user.RoleCitizen)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if citizens == nil {
		citizens = []user.User{}
	}
	httputil.WriteJSON(w, http.StatusOK, citizens)
}

// InsightResponse wraps the digest prose.
type InsightResponse struct {
	Summary string `json:"summary"`
}

// HandleInsight handles GET /admin/insight: an AI-written digest of the
// current application queue. Always 200; the summary text degrades to an
// unavailable notice when the API cannot be reached.
func (h *Handler) HandleInsight(w http.ResponseWriter, r *http.Request) {
	apps, err := h.apps.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary := h.insight.Summarize(r.Context(), digestPrompt(apps))
	httputil.WriteJSON(w, http.StatusOK, InsightResponse{Summary: summary})
}

// digestPrompt condenses the queue into counts the model can narrate.
func digestPrompt(apps []application.Application) string {
	byType := make(map[application.Type]int)
	byStatus := make(map[application.Status]int)
	for _, app := range apps {
		byType[app.Type]++
		byStatus[app.Status]++
	}

	var b strings.Builder
	b.WriteString("Summarize the state of a municipal senior-citizen affairs office's application queue for its administrators, in two or three sentences.\n")
	fmt.Fprintf(&b, "Total applications: %d.\n", len(apps))
	b.WriteString("By status:")
	for _, status := range []application.Status{
		application.StatusPending,
		application.StatusApproved,
		application.StatusRejected,
		application.StatusIssued,
	} {
		fmt.Fprintf(&b, " %s=%d", status, byStatus[status])
	}
	b.WriteString(".\nBy type:")
	for _, t := range []application.Type{
		application.TypeRegistration,
		application.TypeNewID,
		application.TypeRenewalID,
		application.TypeReplacementID,
		application.TypeCashBenefit,
		application.TypeMedicalBenefit,
		application.TypePhilHealth,
	} {
		if byType[t] > 0 {
			fmt.Fprintf(&b, " %s=%d", t, byType[t])
		}
	}
	b.WriteString(".")
	return b.String()
}
