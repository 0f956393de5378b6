package contact

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes contact HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/contact", func(r chi.Router) {
		r.Post("/", h.submit) // POST /api/v1/contact
		r.Get("/", h.list)    // GET  /api/v1/contact (admin)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	m, err := h.service.Submit(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]uint64{"id": m.ID})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, messages)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{
		"code":  string(apperr.CodeOf(err)),
		"error": err.Error(),
	})
}
