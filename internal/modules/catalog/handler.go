package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)                          // GET    /api/v1/products?category=Mugs
		r.Post("/", h.addProduct)                           // POST   /api/v1/products
		r.Get("/{id}", h.getProduct)                        // GET    /api/v1/products/{id}
		r.Put("/{id}", h.updateProduct)                     // PUT    /api/v1/products/{id}
		r.Delete("/{id}", h.deleteProduct)                  // DELETE /api/v1/products/{id}
		r.Patch("/{id}/stock", h.updateStock)               // PATCH  /api/v1/products/{id}/stock
	})
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)                        // GET    /api/v1/categories
		r.Post("/", h.addCategory)                          // POST   /api/v1/categories
		r.Get("/{id}", h.getCategory)                       // GET    /api/v1/categories/{id}
		r.Put("/{id}", h.updateCategory)                    // PUT    /api/v1/categories/{id}
		r.Delete("/{id}", h.deleteCategory)                 // DELETE /api/v1/categories/{id}
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []*Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.service.ListProductsByCategory(r.Context(), category)
	} else {
		products, err = h.service.ListProducts(r.Context())
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	p, err := h.service.AddProduct(r.Context(), identity.CallerFrom(r.Context()), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), identity.CallerFrom(r.Context()), id, req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), identity.CallerFrom(r.Context()), id); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	p, err := h.service.UpdateStock(r.Context(), identity.CallerFrom(r.Context()), id, req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	c, err := h.service.AddCategory(r.Context(), identity.CallerFrom(r.Context()), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), identity.CallerFrom(r.Context()), id, req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := h.service.DeleteCategory(r.Context(), identity.CallerFrom(r.Context()), id); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"deleted": true})
}

func parseID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("invalid id")
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
