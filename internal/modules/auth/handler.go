package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmwanza/storefront-backend/internal/apperr"
)

// Handler exposes auth HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.register) // POST /api/v1/auth/register
		r.Post("/login", h.login)       // POST /api/v1/auth/login
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"token": token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, apperr.InvalidArgument("invalid request body"))
		return
	}
	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"token": token})
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
