package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Handler exposes user registry HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.listAll)                       // GET /api/v1/users (admin)
		r.Get("/me", h.getOwnProfile)               // GET /api/v1/users/me
		r.Put("/me", h.saveOwnProfile)              // PUT /api/v1/users/me
		r.Get("/me/role", h.getOwnRole)             // GET /api/v1/users/me/role
		r.Get("/{principal}", h.getProfile)         // GET /api/v1/users/{principal}
		r.Put("/{principal}/role", h.assignRole)    // PUT /api/v1/users/{principal}/role (admin)
		r.Post("/{principal}/role", h.assignRole)   // legacy verb for the same assignment
	})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListAll(r.Context(), identity.CallerFrom(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, profiles)
}

func (h *Handler) getOwnProfile(w http.ResponseWriter, r *http.Request) {
	caller := identity.CallerFrom(r.Context())
	p, err := h.service.GetProfile(r.Context(), caller, caller.Principal)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) saveOwnProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	p, err := h.service.SaveCallerProfile(r.Context(), identity.CallerFrom(r.Context()), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) getOwnRole(w http.ResponseWriter, r *http.Request) {
	caller := identity.CallerFrom(r.Context())
	respond(w, http.StatusOK, map[string]interface{}{
		"role":  caller.Role,
		"admin": caller.Role.IsAdmin(),
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	principal := identity.Principal(chi.URLParam(r, "principal"))
	p, err := h.service.GetProfile(r.Context(), identity.CallerFrom(r.Context()), principal)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	principal := identity.Principal(chi.URLParam(r, "principal"))
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	if err := h.service.AssignRole(r.Context(), identity.CallerFrom(r.Context()), principal, req); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
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
