package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

func (s OrderStatus) String() string {
	return string(s)
}

type Order struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Items  []CartLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Status OrderStatus     `json:"status"`
}

// NewOrder snapshots lines into a Processing order placed at now.
func NewOrder(now time.Time, lines []CartLine, total decimal.Decimal) Order {
	return Order{
		ID:     NewOrderID(now),
		Date:   now.UTC(),
		Items:  CloneLines(lines),
		Total:  total,
		Status: OrderStatusProcessing,
	}
}

// NewOrderID builds ids shaped like ORD-1718000000000-3F9A2.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// Clone returns a copy of o whose items share nothing with o.
func (o Order) Clone() Order {
	c := o
	c.Items = CloneLines(o.Items)
	return c
}

func (o Order) ItemCount() int {
	return TotalItems(o.Items)
}
