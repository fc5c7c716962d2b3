package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
)

// CommentHandler provides HTTP handlers for transmission comments.
type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentRouter registers comment routes; moderation goes through admin.
func CommentRouter(r chi.Router, comments *services.CommentService, admin func(http.Handler) http.Handler) {
	handler := NewCommentHandler(comments)

	r.Post("/", handler.Create)
	r.With(admin).Post("/admin", handler.CreateAsAdmin)
	r.With(admin).Get("/all/admin", handler.ListAll)
	r.Get("/{transmissionID}", handler.ListForTransmission)
	r.With(admin).Delete("/{commentID}", handler.Delete)
	r.Delete("/{commentID}/user", handler.DeleteOwn)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ScrollID) == "" {
		writeError(w, http.StatusBadRequest, "scroll_id is required")
		return
	}

	comment, err := h.comments.Create(r.Context(), req.TransmissionID, req.ScrollID, req.Content, req.ParentID)
	if err != nil {
		respondError(w, r, err, "guardian or transmission")
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// CreateAsAdmin posts a comment authored by the administrator. A scroll_id in
// the body is accepted and ignored.
func (h *CommentHandler) CreateAsAdmin(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.comments.CreateAsAdmin(r.Context(), req.TransmissionID, req.Content, req.ParentID)
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) ListForTransmission(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForTransmission(r.Context(), chi.URLParam(r, "transmissionID"))
	if err != nil {
		respondError(w, r, err, "transmission")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err, "comment")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "commentID")); err != nil {
		respondError(w, r, err, "comment")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "comment deleted"})
}

func (h *CommentHandler) DeleteOwn(w http.ResponseWriter, r *http.Request) {
	scrollID := strings.TrimSpace(r.URL.Query().Get("scroll_id"))
	if scrollID == "" {
		writeError(w, http.StatusBadRequest, "scroll_id is required")
		return
	}

	if err := h.comments.DeleteOwn(r.Context(), chi.URLParam(r, "commentID"), scrollID); err != nil {
		respondError(w, r, err, "comment")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "comment deleted"})
}

type CommentRequest struct {
	TransmissionID string  `json:"transmission_id" validate:"required"`
	ScrollID       string  `json:"scroll_id"`
	Content        string  `json:"content" validate:"required"`
	ParentID       *string `json:"parent_id"`
}
