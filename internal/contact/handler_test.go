// AngelaMos | 2026
// handler_test.go

package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()

	svc, _ := newTestService()
	handler := NewHandler(svc)

	router := chi.NewRouter()
	handler.RegisterRoutes(router, passthrough, passthrough)
	return router, svc
}

func getJSON(
	t *testing.T,
	router chi.Router,
	path string,
) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)

	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandler_List_EchoesAppliedPagination(t *testing.T) {
	router, svc := newTestRouter(t)

	_, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	// No limit param: the envelope reports the default that was applied,
	// not the zero value the client sent.
	rec, body := getJSON(t, router, "/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(defaultListLimit), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
	assert.Equal(t, float64(1), body["total"])

	rec, body = getJSON(t, router, "/contact?limit=10000&offset=-3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(maxListLimit), body["limit"])
	assert.Equal(t, float64(0), body["offset"])

	rec, body = getJSON(t, router, "/contact?limit=10&offset=20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(20), body["offset"])
}

func TestHandler_List_InvalidStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := getJSON(t, router, "/contact?status=spam")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(
		t,
		"Invalid status. Must be one of: new, read, responded, archived",
		body["error"],
	)
}
