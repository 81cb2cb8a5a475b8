package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fjod/coastline/internal/catalog"
	"github.com/fjod/coastline/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartStore interface {
	Lines() []domain.CartLine
	TotalItems() int
	TotalPrice() decimal.Decimal
	Add(ctx context.Context, product domain.Product, quantity int)
	Remove(ctx context.Context, productID string)
	SetQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)
}

type CartHandler struct {
	cart    CartStore
	catalog ProductCatalog
}

func NewCartHandler(cart CartStore, c ProductCatalog) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: c,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
	Size      string `json:"size,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	domain.CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponseDTO struct {
	Items      []CartLineDTO   `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	lines := h.cart.Lines()
	items := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineDTO{CartLine: l, Subtotal: l.Subtotal()})
	}
	return CartResponseDTO{
		Items:      items,
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	product, err := h.catalog.Find(req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondProductNotFound(w)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if !product.InStock {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}
	if product.NeedsSize() {
		if req.Size == "" {
			respondError(w, http.StatusBadRequest, "size_required", "please select a size")
			return
		}
		if !product.HasSize(req.Size) {
			respondError(w, http.StatusBadRequest, "invalid_size", "size is not offered for this product")
			return
		}
	}

	h.cart.Add(r.Context(), product, quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	// quantities below 1 and unknown ids leave the cart as it is
	h.cart.SetQuantity(r.Context(), chi.URLParam(r, "product_id"), req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse())
}
