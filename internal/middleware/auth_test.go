// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) Verify(
	_ context.Context,
	_ string,
) (*Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	msg, _ := body["error"].(string)
	return msg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_MissingToken(t *testing.T) {
	handler := Authenticator(&stubVerifier{})(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token required", decodeError(t, rec))
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenInvalid),
	}
	handler := Authenticator(verifier)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec))
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenExpired),
	}
	handler := Authenticator(verifier)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer stale")

	handler.ServeHTTP(rec, req)

	// Expired tokens are a 403 like any other bad token, not a 401.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec))
}

func TestAuthenticator_ValidToken(t *testing.T) {
	verifier := &stubVerifier{
		identity: &Identity{UserID: 9, Email: "reader@example.com"},
	}

	var captured *Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Authenticator(verifier)(inner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, int64(9), captured.UserID)
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	handler := RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	handler := RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	ctx := context.WithValue(
		req.Context(),
		IdentityKey,
		&Identity{UserID: 4, Email: "reader@example.com"},
	)

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeError(t, rec))
}

func TestRequireAdmin_Admin(t *testing.T) {
	handler := RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	ctx := context.WithValue(
		req.Context(),
		IdentityKey,
		&Identity{UserID: 1, Email: "admin@example.com", IsAdmin: true},
	)

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
