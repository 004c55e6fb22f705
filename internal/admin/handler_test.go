package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oscahub/internal/application"
	"oscahub/internal/user"
)

type fakeSummarizer struct {
	prompt string
}

func (f *fakeSummarizer) Summarize(_ context.Context, prompt string) string {
	f.prompt = prompt
	return "Two pending registrations await review."
}

type fakeApps struct {
	apps []application.Application
}

func (f *fakeApps) List(context.Context) ([]application.Application, error) {
	return f.apps, nil
}

func adminRouter(t *testing.T, apps *fakeApps, summarizer *fakeSummarizer) chi.Router {
	t.Helper()
	users := user.NewInMemory()
	require.NoError(t, user.Seed(context.Background(), users, time.Now()))

	r := chi.NewRouter()
	NewHandler(users, apps, summarizer, zap.NewNop()).Register(r)
	return r
}

func TestHandleMasterlist(t *testing.T) {
	router := adminRouter(t, &fakeApps{}, &fakeSummarizer{})

	req := httptest.NewRequest(http.MethodGet, "/admin/masterlist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var citizens []user.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&citizens))
	require.Len(t, citizens, 1)
	assert.Equal(t, user.RoleCitizen, citizens[0].Role)
	assert.Equal(t, "Reyes", citizens[0].LastName)
}

func TestHandleInsight(t *testing.T) {
	summarizer := &fakeSummarizer{}
	apps := &fakeApps{apps: []application.Application{
		{Type: application.TypeRegistration, Status: application.StatusPending},
		{Type: application.TypeRegistration, Status: application.StatusPending},
		{Type: application.TypeNewID, Status: application.StatusIssued},
	}}
	router := adminRouter(t, apps, summarizer)

	req := httptest.NewRequest(http.MethodGet, "/admin/insight", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Two pending registrations await review.", resp.Summary)

	assert.Contains(t, summarizer.prompt, "Total applications: 3")
	assert.Contains(t, summarizer.prompt, "pending=2")
	assert.Contains(t, summarizer.prompt, "registration=2")
}
