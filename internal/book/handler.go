// AngelaMos | 2026
// handler.go

package book

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{bookID}", h.GetByID)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"books": books})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		core.NotFound(w, "Book")
		return
	}

	book, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Book")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Envelope{"book": book})
}
