package events

import (
	"context"
	"time"

	"github.com/fjod/coastline/internal/domain"
	"github.com/shopspring/decimal"
)

const OrderPlaced = "order.placed"

// OrderPlacedEvent is the payload written for every placed order.
type OrderPlacedEvent struct {
	EventID string            `json:"event_id"`
	OrderID string            `json:"order_id"`
	Date    time.Time         `json:"date"`
	Items   []domain.CartLine `json:"items"`
	Total   decimal.Decimal   `json:"total"`
	Status  string            `json:"status"`
	Email   string            `json:"email"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order, email string) error
	Close() error
}

// Noop drops every event. Used when no brokers are configured.
type Noop struct{}

func (Noop) PublishOrderPlaced(context.Context, domain.Order, string) error { return nil }

func (Noop) Close() error { return nil }
