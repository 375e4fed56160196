// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, devMode bool) chi.Router {
	t.Helper()

	svc, _, _ := newTestService(t)
	handler := NewHandler(svc, devMode)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(
	t *testing.T,
	router chi.Router,
	path string,
	payload any,
) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandler_Signup(t *testing.T) {
	router := newTestRouter(t, false)

	rec, body := doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Account created successfully!", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, false, user["isAdmin"])
}

func TestHandler_Signup_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t, false)

	payload := map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	}

	rec, _ := doJSON(t, router, "/auth/signup", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, router, "/auth/signup", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email already registered", body["error"])
}

func TestHandler_Signup_ShortPassword(t *testing.T) {
	router := newTestRouter(t, false)

	rec, body := doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "abc",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestHandler_Login(t *testing.T) {
	router := newTestRouter(t, false)

	doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	rec, body := doJSON(t, router, "/auth/login", map[string]any{
		"email":    "jane@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful!", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	router := newTestRouter(t, false)

	doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	// Wrong password and unknown email produce identical responses.
	for _, payload := range []map[string]any{
		{"email": "jane@example.com", "password": "wrong-pass"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		rec, body := doJSON(t, router, "/auth/login", payload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", body["error"])
	}
}

func TestHandler_ForgotPassword_UnknownEmail(t *testing.T) {
	router := newTestRouter(t, true)

	rec, body := doJSON(t, router, "/auth/forgot-password", map[string]any{
		"email": "nobody@example.com",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No account found with this email", body["error"])
}

func TestHandler_ResetFlow(t *testing.T) {
	router := newTestRouter(t, true)

	doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	rec, body := doJSON(t, router, "/auth/forgot-password", map[string]any{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"Verification code sent! Check your server console.",
		body["message"],
	)

	code, ok := body["devCode"].(string)
	require.True(t, ok, "devCode must be present in development mode")
	require.Len(t, code, 6)

	// Wrong code first.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	rec, body = doJSON(t, router, "/auth/verify-code", map[string]any{
		"email": "jane@example.com",
		"code":  wrong,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid verification code", body["error"])

	// Skipping verification blocks the reset.
	rec, body = doJSON(t, router, "/auth/reset-password", map[string]any{
		"email":       "jane@example.com",
		"code":        code,
		"newPassword": "newsecret456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please verify your code first", body["error"])

	rec, body = doJSON(t, router, "/auth/verify-code", map[string]any{
		"email": "jane@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Code verified successfully", body["message"])

	rec, body = doJSON(t, router, "/auth/reset-password", map[string]any{
		"email":       "jane@example.com",
		"code":        code,
		"newPassword": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", body["error"])

	rec, body = doJSON(t, router, "/auth/reset-password", map[string]any{
		"email":       "jane@example.com",
		"code":        code,
		"newPassword": "newsecret456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password reset successfully", body["message"])

	rec, body = doJSON(t, router, "/auth/login", map[string]any{
		"email":    "jane@example.com",
		"password": "newsecret456",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful!", body["message"])
}

func TestHandler_VerifyCode_NoPendingRequest(t *testing.T) {
	router := newTestRouter(t, true)

	doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	rec, body := doJSON(t, router, "/auth/verify-code", map[string]any{
		"email": "jane@example.com",
		"code":  "123456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(
		t,
		"No verification code found. Please request a new one.",
		body["error"],
	)
}

func TestHandler_ForgotPassword_HidesCodeInProduction(t *testing.T) {
	router := newTestRouter(t, false)

	doJSON(t, router, "/auth/signup", map[string]any{
		"name":     "Jane Reader",
		"email":    "jane@example.com",
		"password": "secret123",
	})

	rec, body := doJSON(t, router, "/auth/forgot-password", map[string]any{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, present := body["devCode"]
	assert.False(t, present)
}
