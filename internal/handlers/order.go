package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/types"
)

// Pagination metadata for order listings travels in headers so the body stays
// a plain array.
const (
	headerTotalCount = "X-Total-Count"
	headerPage       = "X-Page"
	headerPerPage    = "X-Per-Page"
)

// OrderHandler provides HTTP handlers for merchandise orders.
type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// OrderRouter registers order routes; fulfilment goes through admin.
func OrderRouter(r chi.Router, orders *services.OrderService, admin func(http.Handler) http.Handler) {
	handler := NewOrderHandler(orders)

	r.Post("/", handler.Create)
	r.With(admin).Get("/", handler.List)
	r.Route("/{orderID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(admin).Delete("/", handler.Delete)
		r.With(admin).Patch("/status", handler.UpdateStatus)
	})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{
			ProductType: item.ProductType,
			Size:        item.Size,
			Quantity:    item.Quantity,
		})
	}

	order, err := h.orders.Create(r.Context(), services.OrderRequest{
		ScrollID:        req.ScrollID,
		Email:           req.Email,
		Items:           lines,
		ShippingName:    req.ShippingName,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: req.ShippingCountry,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(w, r, err, "guardian")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := types.OrderStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	items, total, err := h.orders.List(r.Context(), services.OrderFilter{
		Status: status,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		respondError(w, r, err, "order")
		return
	}

	if items == nil {
		items = []types.Order{}
	}

	w.Header().Set(headerTotalCount, strconv.Itoa(total))
	w.Header().Set(headerPage, strconv.Itoa(page))
	w.Header().Set(headerPerPage, strconv.Itoa(limit))
	writeJSON(w, http.StatusOK, items)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, r, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), types.OrderStatus(req.Status))
	if err != nil {
		respondError(w, r, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		respondError(w, r, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "order deleted"})
}

type OrderItemRequest struct {
	ProductType string `json:"product_type" validate:"required"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

type OrderCreateRequest struct {
	ScrollID        string             `json:"scroll_id" validate:"required"`
	Email           string             `json:"email"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingName    string             `json:"shipping_name"`
	ShippingAddress string             `json:"shipping_address"`
	ShippingCity    string             `json:"shipping_city"`
	ShippingState   string             `json:"shipping_state"`
	ShippingZip     string             `json:"shipping_zip"`
	ShippingCountry string             `json:"shipping_country"`
	Notes           string             `json:"notes"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
