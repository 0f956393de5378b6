package wishlist

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes wishlist HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Get("/", h.get)                         // GET    /api/v1/wishlist
		r.Put("/{productId}", h.add)              // PUT    /api/v1/wishlist/{productId}
		r.Delete("/{productId}", h.remove)        // DELETE /api/v1/wishlist/{productId}
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.Get(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, ids)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.Add(r.Context(), identity.CallerFrom(r.Context()), productID); err != nil {
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
