package catalog

import (
	"strings"

	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// All matches every category or every size.
const All = "All"

// Criteria selects products. An invalid MaxPrice means no upper bound.
type Criteria struct {
	Category string
	Size     string
	MaxPrice decimal.NullDecimal
	Query    string
}

// Everything matches the whole catalog.
func Everything() Criteria {
	return Criteria{Category: All, Size: All}
}

// Filter returns the products matching every predicate of c, in their original
// order. products is not modified.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	folder := cases.Fold()
	query := folder.String(c.Query)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchCategory(p, c.Category) &&
			matchSize(p, c.Size) &&
			matchPrice(p, c.MaxPrice) &&
			matchQuery(folder, p, query) {
			out = append(out, p)
		}
	}
	return out
}

func matchCategory(p domain.Product, category string) bool {
	return category == All || category == "" || string(p.Category) == category
}

func matchSize(p domain.Product, size string) bool {
	return size == All || size == "" || p.HasSize(size)
}

func matchPrice(p domain.Product, max decimal.NullDecimal) bool {
	return !max.Valid || p.Price.LessThanOrEqual(max.Decimal)
}

func matchQuery(folder cases.Caser, p domain.Product, folded string) bool {
	if folded == "" {
		return true
	}
	return strings.Contains(folder.String(p.Name), folded) ||
		strings.Contains(folder.String(p.Description), folded)
}

// Heading is the listing title for the criteria.
func Heading(c Criteria) string {
	switch {
	case c.Query != "":
		return `Search: "` + c.Query + `"`
	case c.Category != "" && c.Category != All:
		return c.Category
	default:
		return "The Collection"
	}
}
