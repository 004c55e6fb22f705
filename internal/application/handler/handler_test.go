package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"oscahub/internal/application"
	"oscahub/internal/application/service"
	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
)

// fakeService records calls and replays scripted answers.
type fakeService struct {
	submitted  []service.SubmitInput
	updated    []id.ApplicationID
	issued     []id.ApplicationID
	updateErr  error
	issueErr   error
	listResult []application.Application
}

func (f *fakeService) Submit(_ context.Context, input service.SubmitInput) (application.Application, error) {
	f.submitted = append(f.submitted, input)
	return application.Application{
		ID:     id.NewApplicationID(),
		Type:   input.Type,
		UserID: input.UserID,
		Status: application.StatusPending,
	}, nil
}

func (f *fakeService) UpdateStatus(_ context.Context, appID id.ApplicationID, _ application.Status, _ string) error {
	f.updated = append(f.updated, appID)
	return f.updateErr
}

func (f *fakeService) IssueIDCard(_ context.Context, appID id.ApplicationID) error {
	f.issued = append(f.issued, appID)
	return f.issueErr
}

func (f *fakeService) List(context.Context) ([]application.Application, error) {
	return f.listResult, nil
}

func newRouter(svc *fakeService) chi.Router {
	r := chi.NewRouter()
	New(svc, zap.NewNop()).Register(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleSubmit(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	rec := postJSON(t, router, "/applications", map[string]any{
		"type": "registration",
		"applicant": map[string]string{
			"firstName": "Juan",
			"lastName":  "Dela Cruz",
			"birthDate": "1958-03-12",
			"phone":     "09171234567",
		},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.submitted, 1)
	assert.Equal(t, application.TypeRegistration, svc.submitted[0].Type)
	assert.Equal(t, 1958, svc.submitted[0].Applicant.BirthDate.Year())
}

func TestHandleSubmitValidation(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	t.Run("unknown type", func(t *testing.T) {
		rec := postJSON(t, router, "/applications", map[string]any{
			"type":      "vacation",
			"applicant": map[string]string{"firstName": "Juan", "lastName": "Dela Cruz"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing applicant name", func(t *testing.T) {
		rec := postJSON(t, router, "/applications", map[string]any{
			"type":      "registration",
			"applicant": map[string]string{"firstName": "Juan"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed birth date", func(t *testing.T) {
		rec := postJSON(t, router, "/applications", map[string]any{
			"type":      "registration",
			"applicant": map[string]string{"firstName": "Juan", "lastName": "Dela Cruz", "birthDate": "03/12/1958"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown json fields are rejected", func(t *testing.T) {
		rec := postJSON(t, router, "/applications", map[string]any{
			"type":      "registration",
			"applicant": map[string]string{"firstName": "Juan", "lastName": "Dela Cruz"},
			"surprise":  true,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.Empty(t, svc.submitted)
}

func TestHandleList(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandleUpdateStatus(t *testing.T) {
	t.Run("approval answers 202", func(t *testing.T) {
		svc := &fakeService{}
		router := newRouter(svc)
		appID := id.NewApplicationID()

		body, _ := json.Marshal(map[string]string{"status": "approved"})
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+appID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		require.Len(t, svc.updated, 1)
		assert.Equal(t, appID, svc.updated[0])
	})

	t.Run("rejection without a reason is a bad request", func(t *testing.T) {
		svc := &fakeService{}
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"status": "rejected"})
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+id.NewApplicationID().String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.updated)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		svc := &fakeService{}
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"status": "approved"})
		req := httptest.NewRequest(http.MethodPatch, "/applications/not-a-uuid/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict surfaces as 409", func(t *testing.T) {
		svc := &fakeService{updateErr: dErrors.New(dErrors.CodeConflict, "application is no longer pending")}
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"status": "approved"})
		req := httptest.NewRequest(http.MethodPatch, "/applications/"+id.NewApplicationID().String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleIssueID(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)
	appID := id.NewApplicationID()

	req := httptest.NewRequest(http.MethodPost, "/applications/"+appID.String()+"/issue-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.issued, 1)
	assert.Equal(t, appID, svc.issued[0])
}
