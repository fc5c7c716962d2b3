package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
)

// MissionRouter registers the mission clock routes.
func MissionRouter(r chi.Router, mission *services.MissionService) {
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, mission.Status())
	})
}
