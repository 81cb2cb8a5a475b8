package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryMen         Category = "Men"
	CategoryWomen       Category = "Women"
	CategoryAccessories Category = "Accessories"
)

// OneSize marks products sold in a single size.
const OneSize = "OS"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Sizes       []string        `json:"size"`
	Images      []string        `json:"images"`
	Description string          `json:"description"`
	InStock     bool            `json:"inStock"`
}

// PrimaryImage is the card image of the product, empty when it has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// NeedsSize reports whether a shopper has to pick a size before adding the product to the cart.
func (p Product) NeedsSize() bool {
	return len(p.Sizes) > 0 && p.Sizes[0] != OneSize
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	c := p
	if p.Sizes != nil {
		c.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	return c
}
