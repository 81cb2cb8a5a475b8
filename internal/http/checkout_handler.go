package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/coastline/internal/checkout"
	"github.com/fjod/coastline/internal/domain"
)

type CheckoutService interface {
	Quote() (checkout.Quote, error)
	PlaceOrder(ctx context.Context) (domain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(svc CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.checkout.Quote()
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.checkout.PlaceOrder(ctx)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderDTO(order))
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "your cart is empty")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "checkout timed out")
	case errors.Is(err, context.Canceled):
		respondError(w, http.StatusServiceUnavailable, "cancelled", "checkout was cancelled")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
