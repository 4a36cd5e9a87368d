package memory

import (
	"context"

	"budgetthreads/internal/domain"
)

// Carts is the cart table of a Store.
type Carts struct {
	s *Store
}

// Items returns a copy of the session cart, creating an empty one on first access.
func (c *Carts) Items(_ context.Context, sessionID string) ([]domain.LineItem, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items, ok := c.s.carts[sessionID]
	if !ok {
		items = []domain.LineItem{}
		c.s.carts[sessionID] = items
	}
	return domain.CloneItems(items), nil
}

func (c *Carts) Append(_ context.Context, sessionID string, item domain.LineItem) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.carts[sessionID] = append(c.s.carts[sessionID], domain.CloneItems([]domain.LineItem{item})...)
	return nil
}

func (c *Carts) Remove(_ context.Context, sessionID, itemID string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items := c.s.carts[sessionID]
	for i := range items {
		if items[i].ID == itemID {
			next := make([]domain.LineItem, 0, len(items)-1)
			next = append(next, items[:i]...)
			c.s.carts[sessionID] = append(next, items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (c *Carts) Clear(_ context.Context, sessionID string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.carts[sessionID] = []domain.LineItem{}
	return nil
}
