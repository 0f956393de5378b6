package order

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.create)                    // POST  /api/v1/orders
		r.Get("/", h.listAll)                    // GET   /api/v1/orders (admin)
		r.Get("/mine", h.listMine)               // GET   /api/v1/orders/mine
		r.Get("/{id}", h.get)                    // GET   /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)  // PATCH /api/v1/orders/{id}/status
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	o, err := h.service.Create(r.Context(), identity.CallerFrom(r.Context()), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	o, err := h.service.Get(r.Context(), identity.CallerFrom(r.Context()), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListMine(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), identity.CallerFrom(r.Context()), id, req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func parseID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("invalid order id")
	}
	return id, nil
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
