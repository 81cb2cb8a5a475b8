package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fjod/coastline/internal/catalog"
	"github.com/fjod/coastline/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductCatalog interface {
	Find(id string) (domain.Product, error)
	Filter(criteria catalog.Criteria) []domain.Product
	Categories() []domain.Category
	Sizes() []string
	HighestPrice() decimal.Decimal
}

type ProductHandler struct {
	catalog ProductCatalog
}

func NewProductHandler(c ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

type ProductResponseDTO struct {
	domain.Product
	PrimaryImage string `json:"primary_image"`
	NeedsSize    bool   `json:"needs_size"`
}

type FacetsDTO struct {
	Categories []string        `json:"categories"`
	Sizes      []string        `json:"sizes"`
	MaxPrice   decimal.Decimal `json:"max_price"`
}

type ProductListResponseDTO struct {
	Heading  string               `json:"heading"`
	Count    int                  `json:"count"`
	Products []ProductResponseDTO `json:"products"`
	Facets   FacetsDTO            `json:"facets"`
}

type ProductNotFoundDTO struct {
	ErrorResponse
	Back string `json:"back"`
}

func toProductDTO(p domain.Product) ProductResponseDTO {
	return ProductResponseDTO{
		Product:      p,
		PrimaryImage: p.PrimaryImage(),
		NeedsSize:    p.NeedsSize(),
	}
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := catalog.Criteria{
		Category: q.Get("category"),
		Size:     q.Get("size"),
		Query:    strings.TrimSpace(q.Get("q")),
	}

	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			respondError(w, http.StatusBadRequest, "invalid_max_price", "max_price must be a non-negative number")
			return
		}
		criteria.MaxPrice = decimal.NewNullDecimal(maxPrice)
	}

	products := h.catalog.Filter(criteria)
	dtos := make([]ProductResponseDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}

	categories := []string{catalog.All}
	for _, c := range h.catalog.Categories() {
		categories = append(categories, string(c))
	}

	respondJSON(w, http.StatusOK, ProductListResponseDTO{
		Heading:  catalog.Heading(criteria),
		Count:    len(dtos),
		Products: dtos,
		Facets: FacetsDTO{
			Categories: categories,
			Sizes:      append([]string{catalog.All}, h.catalog.Sizes()...),
			MaxPrice:   h.catalog.HighestPrice(),
		},
	})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Find(chi.URLParam(r, "product_id"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondProductNotFound(w)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}

func respondProductNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, ProductNotFoundDTO{
		ErrorResponse: ErrorResponse{Error: "product not found", Code: "product_not_found"},
		Back:          "/api/v1/products",
	})
}
