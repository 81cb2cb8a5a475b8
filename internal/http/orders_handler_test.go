package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrders(s *testServer, n int) {
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		lines := []domain.CartLine{{Product: testProducts[2], Quantity: i + 1}}
		s.account.AddOrder(context.Background(), domain.NewOrder(at, lines, decimal.NewFromInt(int64(45*(i+1)+15))))
	}
}

func TestListOrders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/orders", nil)
	requireStatus(t, rec, http.StatusOK)
	empty := decodeBody[OrderListResponseDTO](t, rec)
	assert.Equal(t, 0, empty.Count)
	assert.Empty(t, empty.Orders)

	seedOrders(s, 3)

	rec = s.do(t, http.MethodGet, "/api/v1/orders", nil)
	requireStatus(t, rec, http.StatusOK)
	resp := decodeBody[OrderListResponseDTO](t, rec)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, 3, resp.Orders[0].ItemCount, "newest first")
	assert.Equal(t, 1, resp.Orders[2].ItemCount)
}

func TestGetOrder(t *testing.T) {
	s := newTestServer(t)
	seedOrders(s, 1)
	placed := s.account.Orders()[0]

	rec := s.do(t, http.MethodGet, "/api/v1/orders/"+placed.ID, nil)
	requireStatus(t, rec, http.StatusOK)
	resp := decodeBody[OrderResponseDTO](t, rec)
	assert.Equal(t, placed.ID, resp.ID)
	assert.True(t, placed.Date.Equal(resp.Date))
	assert.Equal(t, "60.00", resp.Total.StringFixed(2))

	rec = s.do(t, http.MethodGet, "/api/v1/orders/ORD-0-XXXXX", nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "order_not_found", decodeBody[ErrorResponse](t, rec).Code)
}
