package domain

import "github.com/shopspring/decimal"

// CartLine is a product snapshot plus the chosen quantity. It serializes flat:
// the product fields followed by "quantity".
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalItems is the sum of all line quantities.
func TotalItems(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price * quantity over all lines.
func TotalPrice(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// CloneLines deep copies lines, product slices included.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}
