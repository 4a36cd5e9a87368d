// Package events publishes storefront domain events.
package events

import (
	"context"
	"time"
)

const RoutingKeyOrderPlaced = "order.placed"

// OrderPlaced is emitted after an order has been recorded and the cart
// cleared.
type OrderPlaced struct {
	OrderID         string    `json:"id"`
	ExternalOrderID string    `json:"orderId"`
	SessionID       string    `json:"sessionId,omitempty"`
	AmountINR       int64     `json:"amountINR"`
	ItemCount       int       `json:"itemCount"`
	Fallback        bool      `json:"fallback"`
	PlacedAt        time.Time `json:"placedAt"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (Nop) Close() error                                         { return nil }
