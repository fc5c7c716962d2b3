package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
)

// GuardianHandler serves registration, login and guardian lookups.
type GuardianHandler struct {
	guardians *services.GuardianService
}

func NewGuardianHandler(guardians *services.GuardianService) *GuardianHandler {
	return &GuardianHandler{guardians: guardians}
}

// GuardianRouter registers guardian routes on the given router. The login
// route is wrapped with loginLimit when it is set.
func GuardianRouter(r chi.Router, guardians *services.GuardianService, loginLimit func(http.Handler) http.Handler) {
	handler := NewGuardianHandler(guardians)

	r.Post("/register", handler.Register)
	if loginLimit != nil {
		r.With(loginLimit).Post("/login", handler.Login)
	} else {
		r.Post("/login", handler.Login)
	}
	r.Get("/lookup", handler.Lookup)
	r.Get("/registry", handler.Registry)
	r.Get("/count", handler.Count)
	r.Get("/{scrollID}", handler.GetByScrollID)
}

// Register creates a guardian. An already registered email answers 200 with
// the existing record when registration is open.
func (h *GuardianHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	guardian, _, err := h.guardians.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, guardian)
}

func (h *GuardianHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	guardian, err := h.guardians.Login(r.Context(), req.ScrollID, req.Password)
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, guardian)
}

func (h *GuardianHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	guardian, err := h.guardians.LookupByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, guardian)
}

func (h *GuardianHandler) Registry(w http.ResponseWriter, r *http.Request) {
	guardians, err := h.guardians.Registry(r.Context())
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, guardians)
}

func (h *GuardianHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.guardians.Count(r.Context())
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (h *GuardianHandler) GetByScrollID(w http.ResponseWriter, r *http.Request) {
	guardian, err := h.guardians.GetByScrollID(r.Context(), chi.URLParam(r, "scrollID"))
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, guardian)
}

// CertificateRouter registers certificate routes on the given router.
func CertificateRouter(r chi.Router, guardians *services.GuardianService) {
	handler := NewGuardianHandler(guardians)

	r.Get("/verify", handler.VerifyCertificate)
	r.Get("/{scrollID}", handler.Certificate)
}

func (h *GuardianHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	cert, err := h.guardians.Certificate(r.Context(), chi.URLParam(r, "scrollID"))
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, cert)
}

func (h *GuardianHandler) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	cert, err := h.guardians.VerifyCertificate(r.Context(), token)
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, cert)
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password"`
}

type LoginRequest struct {
	ScrollID string `json:"scroll_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
