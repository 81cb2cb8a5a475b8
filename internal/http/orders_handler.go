package http

import (
	"errors"
	"net/http"

	"github.com/fjod/coastline/internal/account"
	"github.com/fjod/coastline/internal/domain"
	"github.com/go-chi/chi/v5"
)

type OrderHistory interface {
	Orders() []domain.Order
	RecentOrders(n int) []domain.Order
	Order(id string) (domain.Order, error)
}

type OrdersHandler struct {
	orders OrderHistory
}

func NewOrdersHandler(orders OrderHistory) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type OrderResponseDTO struct {
	domain.Order
	ItemCount int `json:"item_count"`
}

type OrderListResponseDTO struct {
	Count  int                `json:"count"`
	Orders []OrderResponseDTO `json:"orders"`
}

func toOrderDTO(o domain.Order) OrderResponseDTO {
	return OrderResponseDTO{Order: o, ItemCount: o.ItemCount()}
}

func toOrderDTOs(orders []domain.Order) []OrderResponseDTO {
	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	return dtos
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	dtos := toOrderDTOs(h.orders.Orders())
	respondJSON(w, http.StatusOK, OrderListResponseDTO{
		Count:  len(dtos),
		Orders: dtos,
	})
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, err := h.orders.Order(orderID)
	if errors.Is(err, account.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toOrderDTO(order))
}
