// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	devMode   bool
}

func NewHandler(service *Service, devMode bool) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		devMode:   devMode,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/verify-code", h.VerifyCode)
		r.Post("/reset-password", h.ResetPassword)
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.BadRequest(w, "Email already registered")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, core.Envelope{
		"message": "Account created successfully!",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Fail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{
		"message": "Login successful!",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	code, err := h.service.RequestReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUnknownEmail) {
			core.Fail(
				w,
				http.StatusNotFound,
				"No account found with this email",
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	payload := core.Envelope{
		"message": "Verification code sent! Check your server console.",
	}
	// Development convenience only; production clients never see the code.
	if h.devMode {
		payload["devCode"] = code
	}

	core.OK(w, payload)
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.VerifyResetCode(r.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrNoPendingReset):
			core.BadRequest(
				w,
				"No verification code found. Please request a new one.",
			)
		case errors.Is(err, ErrResetCodeExpired):
			core.BadRequest(
				w,
				"Verification code has expired. Please request a new one.",
			)
		case errors.Is(err, ErrCodeMismatch):
			core.BadRequest(w, "Invalid verification code")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, core.Envelope{"message": "Code verified successfully"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeakPassword):
			core.BadRequest(w, "Password must be at least 6 characters")
		case errors.Is(err, ErrNotVerified):
			core.BadRequest(w, "Please verify your code first")
		case errors.Is(err, ErrCodeMismatch):
			core.BadRequest(w, "Invalid verification code")
		case errors.Is(err, ErrUnknownEmail):
			core.NotFound(w, "User")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, core.Envelope{"message": "Password reset successfully"})
}
