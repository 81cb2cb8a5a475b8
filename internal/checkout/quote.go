package checkout

import (
	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// FreeShippingOver is exclusive: a subtotal of exactly 200.00 still pays shipping.
	FreeShippingOver = decimal.NewFromInt(200)
	FlatShipping     = decimal.NewFromInt(15)
)

type Quote struct {
	Items    int             `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingOver) {
		return decimal.Zero
	}
	return FlatShipping
}

func NewQuote(lines []domain.CartLine) Quote {
	subtotal := domain.TotalPrice(lines)
	shipping := ShippingFor(subtotal)
	return Quote{
		Items:    domain.TotalItems(lines),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
