package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
)

const (
	formFieldFile      = "file"
	maxMultipartMemory = 8 << 20
	uploadsPath        = "/api/uploads/"
)

// UploadHandler accepts admin image uploads and serves stored files.
type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadRouter registers the upload routes under the API root.
func UploadRouter(r chi.Router, uploads *services.UploadService, admin func(http.Handler) http.Handler) {
	handler := NewUploadHandler(uploads)

	r.With(admin).Post("/upload/image", handler.UploadImage)
	r.Get("/uploads/*", handler.Serve)
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxImageSize+maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile(formFieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	data, err := readFileLimited(file, services.MaxImageSize)
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	image, err := h.uploads.StoreImage(r.Context(), data)
	if err != nil {
		respondError(w, r, err, "upload")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		URL:         uploadsPath + image.Key,
		Filename:    image.Filename,
		ContentType: image.ContentType,
		Size:        image.Size,
	})
}

func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.uploads.Open(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		respondError(w, r, err, "file")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

type UploadResponse struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
