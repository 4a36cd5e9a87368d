package cart

import (
	"context"

	"budgetthreads/internal/domain"
)

// Repository stores session carts as ordered line item sequences.
type Repository interface {
	// Items returns the cart in insertion order, creating it empty on first access.
	Items(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	// Append adds item at the end of the cart.
	Append(ctx context.Context, sessionID string, item domain.LineItem) error
	// Remove deletes the item with itemID; a missing item is not an error.
	Remove(ctx context.Context, sessionID, itemID string) error
	// Clear removes every item but keeps the cart.
	Clear(ctx context.Context, sessionID string) error
}
