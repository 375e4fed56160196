// AngelaMos | 2026
// handler.go

package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the contact endpoints: the form submission is
// public, inbox management sits behind the admin gate.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/contact", func(r chi.Router) {
		r.Post("/", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Get("/", h.List)
			r.Get("/{messageID}", h.Get)
			r.Patch("/{messageID}/status", h.UpdateStatus)
			r.Delete("/{messageID}", h.Delete)
		})
	})
}

// RegisterAdminRoutes mounts the same inbox management handlers under
// the admin prefix; the caller supplies the authenticator and gate.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{messageID}", h.Get)
		r.Patch("/{messageID}/status", h.UpdateStatus)
		r.Delete("/{messageID}", h.Delete)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	msg, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			core.BadRequest(w, "All fields are required")
		case errors.Is(err, ErrInvalidEmail):
			core.BadRequest(w, "Invalid email address")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, core.Envelope{
		"messageId": msg.ID,
		"message":   "Thank you for your message! We'll get back to you soon.",
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Status: r.URL.Query().Get("status"),
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			q.Limit = limit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			q.Offset = offset
		}
	}

	messages, total, applied, err := h.service.List(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			core.BadRequest(
				w,
				"Invalid status. Must be one of: "+
					strings.Join(ValidStatuses, ", "),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{
		"messages": messages,
		"total":    total,
		"limit":    applied.Limit,
		"offset":   applied.Offset,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r)
	if err != nil {
		core.NotFound(w, "Message")
		return
	}

	msg, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Message")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"message": msg})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r)
	if err != nil {
		core.NotFound(w, "Message")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			core.BadRequest(
				w,
				"Invalid status. Must be one of: "+
					strings.Join(ValidStatuses, ", "),
			)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Message")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, core.Envelope{"message": "Message status updated successfully"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r)
	if err != nil {
		core.NotFound(w, "Message")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Message")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"message": "Message deleted successfully"})
}

func parseMessageID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
}
