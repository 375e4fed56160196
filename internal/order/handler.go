// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhaven/internal/core"
	"github.com/carterperez-dev/bookhaven/internal/middleware"
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

// RegisterRoutes mounts the customer-facing endpoints; the caller wraps
// them in the authenticator.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{orderID}", h.Get)
	})
}

// RegisterAdminRoutes mounts the back-office endpoints; the caller wraps
// them in the authenticator plus the admin gate.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Get("/{orderID}", h.AdminGet)
		r.Patch("/{orderID}/status", h.AdminUpdateStatus)
		r.Delete("/{orderID}", h.AdminDelete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.Place(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			core.BadRequest(w, "No items in order")
		case errors.Is(err, ErrMissingShipping):
			core.BadRequest(w, "Shipping information required")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, core.Envelope{
		"orderId": order.ID,
		"message": "Order placed successfully",
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	orders, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"orders": orders})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	id, err := parseOrderID(r)
	if err != nil {
		core.NotFound(w, "Order")
		return
	}

	order, err := h.service.GetForUser(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"order": order})
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"orders": orders})
}

func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		core.NotFound(w, "Order")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"order": order})
}

func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		core.NotFound(w, "Order")
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
			core.NotFound(w, "Order")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, core.Envelope{"message": "Order status updated successfully"})
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		core.NotFound(w, "Order")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"message": "Order deleted successfully"})
}

func parseOrderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
}
