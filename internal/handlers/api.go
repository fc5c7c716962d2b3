package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
)

// API bundles the services exposed over HTTP.
type API struct {
	Mission       *services.MissionService
	Guardians     *services.GuardianService
	Transmissions *services.TransmissionService
	Comments      *services.CommentService
	Merchandise   *services.MerchandiseService
	Orders        *services.OrderService
	Uploads       *services.UploadService

	AdminPassword string
	// LoginLimiter throttles guardian logins; nil disables throttling.
	LoginLimiter *RateLimiter
}

// APIRouter registers every API route on r, which is mounted at /api.
func APIRouter(r chi.Router, api API) {
	admin := RequireAdmin(api.AdminPassword)

	var loginLimit func(http.Handler) http.Handler
	if api.LoginLimiter != nil {
		loginLimit = api.LoginLimiter.Middleware
	}

	r.Get("/", Welcome)
	r.With(admin).Post("/admin/login", AdminLogin)
	r.Route("/mission", func(r chi.Router) {
		MissionRouter(r, api.Mission)
	})
	r.Route("/guardians", func(r chi.Router) {
		GuardianRouter(r, api.Guardians, loginLimit)
	})
	r.Route("/certificate", func(r chi.Router) {
		CertificateRouter(r, api.Guardians)
	})
	r.Route("/transmissions", func(r chi.Router) {
		TransmissionRouter(r, api.Transmissions, admin)
	})
	r.Route("/comments", func(r chi.Router) {
		CommentRouter(r, api.Comments, admin)
	})
	r.Route("/merchandise", func(r chi.Router) {
		MerchandiseRouter(r, api.Merchandise, admin)
	})
	r.Route("/orders", func(r chi.Router) {
		OrderRouter(r, api.Orders, admin)
	})
	UploadRouter(r, api.Uploads, admin)
}
