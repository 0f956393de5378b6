package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.get)                            // GET    /api/v1/cart
		r.Delete("/", h.clear)                       // DELETE /api/v1/cart
		r.Post("/items", h.add)                      // POST   /api/v1/cart/items
		r.Put("/items/{productId}", h.update)        // PUT    /api/v1/cart/items/{productId}
		r.Delete("/items/{productId}", h.remove)     // DELETE /api/v1/cart/items/{productId}
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Get(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	if err := h.service.Add(r.Context(), identity.CallerFrom(r.Context()), req); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	if err := h.service.Update(r.Context(), identity.CallerFrom(r.Context()), productID, req); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.Remove(r.Context(), identity.CallerFrom(r.Context()), productID); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), identity.CallerFrom(r.Context())); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func parseProductID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("invalid product id")
	}
	return id, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
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
