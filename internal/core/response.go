// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the payload half of the uniform response wrapper. Success
// responses come out as {"success": true, ...payload}; failures as
// {"success": false, "error": "<message>"}.
type Envelope map[string]any

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, payload Envelope) {
	writeSuccess(w, http.StatusOK, payload)
}

func Created(w http.ResponseWriter, payload Envelope) {
	writeSuccess(w, http.StatusCreated, payload)
}

func writeSuccess(w http.ResponseWriter, status int, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{
		"success": false,
		"error":   message,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access token required"
	}
	Fail(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Fail(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, resource string) {
	Fail(w, http.StatusNotFound, resource+" not found")
}

// InternalServerError logs the underlying failure and returns a generic
// message; database details never reach the client.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	Fail(w, http.StatusInternalServerError, "Server error")
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		Fail(w, appErr.Status, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "")
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "")
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid):
		Fail(w, http.StatusForbidden, "Invalid or expired token")
	case errors.Is(err, ErrDuplicateKey):
		Fail(w, http.StatusBadRequest, "Already exists")
	case errors.Is(err, ErrInvalidInput):
		Fail(w, http.StatusBadRequest, err.Error())
	default:
		InternalServerError(w, err)
	}
}
