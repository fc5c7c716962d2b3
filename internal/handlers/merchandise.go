package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/types"
)

// MerchandiseHandler serves the product catalog.
type MerchandiseHandler struct {
	merchandise *services.MerchandiseService
}

func NewMerchandiseHandler(merchandise *services.MerchandiseService) *MerchandiseHandler {
	return &MerchandiseHandler{merchandise: merchandise}
}

// MerchandiseRouter registers catalog routes; stored product management goes
// through admin.
func MerchandiseRouter(r chi.Router, merchandise *services.MerchandiseService, admin func(http.Handler) http.Handler) {
	handler := NewMerchandiseHandler(merchandise)

	r.Get("/", handler.Catalog)
	r.With(admin).Get("/list", handler.ListStored)
	r.With(admin).Post("/", handler.Create)
	r.With(admin).Delete("/{productID}", handler.Delete)
	r.Get("/{productType}", handler.Get)
}

// Catalog returns the effective catalog keyed by product type.
func (h *MerchandiseHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.merchandise.Catalog(r.Context())
	if err != nil {
		respondError(w, r, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *MerchandiseHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.merchandise.Get(r.Context(), chi.URLParam(r, "productType"))
	if err != nil {
		respondError(w, r, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *MerchandiseHandler) ListStored(w http.ResponseWriter, r *http.Request) {
	products, err := h.merchandise.ListStored(r.Context())
	if err != nil {
		respondError(w, r, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *MerchandiseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.merchandise.Create(r.Context(), types.Product{
		ProductType: req.ProductType,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Sizes:       req.Sizes,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(w, r, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *MerchandiseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.merchandise.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, r, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "product deleted"})
}

type ProductRequest struct {
	ProductType string          `json:"product_type" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Sizes       []string        `json:"sizes"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url"`
}
