package checkout

import (
	"testing"

	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingFor(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"small order", "50.00", "15.00"},
		{"exactly threshold", "200.00", "15.00"},
		{"just over threshold", "200.01", "0.00"},
		{"large order", "329.99", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingFor(decimal.RequireFromString(tt.subtotal))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestNewQuote(t *testing.T) {
	lines := []domain.CartLine{
		{Product: domain.Product{ID: "p1", Price: decimal.RequireFromString("89.99")}, Quantity: 1},
		{Product: domain.Product{ID: "p3", Price: decimal.RequireFromString("45.00")}, Quantity: 2},
	}

	q := NewQuote(lines)

	assert.Equal(t, 3, q.Items)
	assert.Equal(t, "179.99", q.Subtotal.StringFixed(2))
	assert.Equal(t, "15.00", q.Shipping.StringFixed(2))
	assert.Equal(t, "194.99", q.Total.StringFixed(2))

	q = NewQuote([]domain.CartLine{
		{Product: domain.Product{ID: "p9", Price: decimal.RequireFromString("25.00")}, Quantity: 2},
	})
	assert.Equal(t, "65.00", q.Total.StringFixed(2))
}
