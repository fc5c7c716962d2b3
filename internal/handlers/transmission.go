package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/types"
)

// TransmissionHandler provides HTTP handlers for transmissions.
type TransmissionHandler struct {
	transmissions *services.TransmissionService
}

func NewTransmissionHandler(transmissions *services.TransmissionService) *TransmissionHandler {
	return &TransmissionHandler{transmissions: transmissions}
}

// TransmissionRouter registers transmission routes; writes go through admin.
func TransmissionRouter(r chi.Router, transmissions *services.TransmissionService, admin func(http.Handler) http.Handler) {
	handler := NewTransmissionHandler(transmissions)

	r.Get("/", handler.List)
	r.Get("/latest", handler.Latest)
	r.With(admin).Post("/", handler.Create)
	r.Route("/{transmissionID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(admin).Delete("/", handler.Delete)
	})
}

func (h *TransmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TransmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transmission, err := h.transmissions.Create(r.Context(), types.Transmission{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		DayNumber:   *req.DayNumber,
	})
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, transmission)
}

func (h *TransmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	transmissions, err := h.transmissions.List(r.Context())
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, transmissions)
}

// Latest answers JSON null when nothing has been published.
func (h *TransmissionHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.transmissions.Latest(r.Context())
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (h *TransmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	transmission, err := h.transmissions.Get(r.Context(), chi.URLParam(r, "transmissionID"))
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, transmission)
}

func (h *TransmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transmissions.Delete(r.Context(), chi.URLParam(r, "transmissionID")); err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "transmission deleted"})
}

type TransmissionRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	VideoURL    *string `json:"video_url"`
	DayNumber   *int    `json:"day_number" validate:"required"`
}
