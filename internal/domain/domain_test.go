package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	lines := []CartLine{
		{Product: Product{ID: "p1", Price: decimal.RequireFromString("89.99"), Category: CategoryMen}, Quantity: 1},
		{Product: Product{ID: "p2", Price: decimal.RequireFromString("120"), Category: CategoryWomen}, Quantity: 2},
	}

	assert.Equal(t, 3, TotalItems(lines))
	assert.Equal(t, "329.99", TotalPrice(lines).StringFixed(2))
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, 0, TotalItems(nil))
	assert.True(t, TotalPrice(nil).IsZero())
}

func TestNewSession(t *testing.T) {
	s := NewSession("jane@example.com")
	assert.Equal(t, "jane", s.Name)
	assert.Equal(t, "jane@example.com", s.Email)

	s = NewSession("a@b@c")
	assert.Equal(t, "a", s.Name)

	s = NewSession("nobody")
	assert.Equal(t, "nobody", s.Name)
}

func TestNewOrderID_Format(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	id := NewOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-1718000000000-[0-9A-F]{5}$`), id)
}

func TestNewOrder_SnapshotIsIndependent(t *testing.T) {
	lines := []CartLine{
		{Product: Product{ID: "p1", Sizes: []string{"S", "M"}, Images: []string{"a.jpg"}}, Quantity: 2},
	}
	order := NewOrder(time.Now(), lines, decimal.NewFromInt(10))

	lines[0].Quantity = 9
	lines[0].Sizes[0] = "XXL"
	lines[0].Images[0] = "b.jpg"

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "S", order.Items[0].Sizes[0])
	assert.Equal(t, "a.jpg", order.Items[0].PrimaryImage())
	assert.Equal(t, OrderStatusProcessing, order.Status)
}

func TestProduct_NeedsSize(t *testing.T) {
	assert.True(t, Product{Sizes: []string{"S", "M"}}.NeedsSize())
	assert.False(t, Product{Sizes: []string{OneSize}}.NeedsSize())
	assert.False(t, Product{}.NeedsSize())
}
