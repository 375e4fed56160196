// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK_MergesPayloadWithSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	OK(rec, Envelope{"books": []string{"a", "b"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["books"], 2)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	Created(rec, Envelope{"orderId": 42})

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["orderId"])
}

func TestFail_Shape(t *testing.T) {
	rec := httptest.NewRecorder()

	Fail(rec, http.StatusBadRequest, "No items in order")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No items in order", body["error"])
}

func TestNotFound_AppendsSuffix(t *testing.T) {
	rec := httptest.NewRecorder()

	NotFound(rec, "Book")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeBody(t, rec)["error"])
}

func TestInternalServerError_HidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	InternalServerError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", decodeBody(t, rec)["error"])
}

func TestJSONError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONError(rec, ForbiddenError("Admin access required"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeBody(t, rec)["error"])
}

func TestJSONError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "Not found"},
		{
			"unauthorized",
			ErrUnauthorized,
			http.StatusUnauthorized,
			"Access token required",
		},
		{
			"token expired",
			ErrTokenExpired,
			http.StatusForbidden,
			"Invalid or expired token",
		},
		{
			"token invalid",
			ErrTokenInvalid,
			http.StatusForbidden,
			"Invalid or expired token",
		},
		{
			"unknown",
			errors.New("boom"),
			http.StatusInternalServerError,
			"Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			JSONError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
		})
	}
}
