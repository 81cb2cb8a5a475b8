package catalog

import (
	"context"
	"fmt"

	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog is the read-only product list, kept in its seeded order.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
		c.byID[p.ID] = i
	}
	return c
}

// Load reads every product from repo into a Catalog.
func Load(ctx context.Context, repo RepoInterface) (*Catalog, error) {
	products, err := repo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(products), nil
}

// Products returns a copy of the full catalog.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

func (c *Catalog) Find(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i].Clone(), nil
}

// Filter applies criteria to the catalog.
func (c *Catalog) Filter(criteria Criteria) []domain.Product {
	return Filter(c.Products(), criteria)
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []domain.Category {
	seen := make(map[domain.Category]bool)
	var out []domain.Category
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Sizes lists the distinct size labels in first-seen order.
func (c *Catalog) Sizes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		for _, s := range p.Sizes {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// HighestPrice is the default upper bound of the price filter.
func (c *Catalog) HighestPrice() decimal.Decimal {
	highest := decimal.Zero
	for _, p := range c.products {
		if p.Price.GreaterThan(highest) {
			highest = p.Price
		}
	}
	return highest
}
