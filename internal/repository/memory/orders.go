package memory

import (
	"context"

	"budgetthreads/internal/domain"
)

type Orders struct {
	s *Store
}

func (o *Orders) Create(_ context.Context, order domain.Order) (*domain.Order, error) {
	order.Items = domain.CloneItems(order.Items)
	order.Meta = domain.CloneMeta(order.Meta)
	o.s.mu.Lock()
	o.s.orders = append(o.s.orders, order)
	o.s.mu.Unlock()
	return cloneOrder(order), nil
}

// List returns orders newest first.
func (o *Orders) List(_ context.Context) ([]domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	out := make([]domain.Order, 0, len(o.s.orders))
	for i := len(o.s.orders) - 1; i >= 0; i-- {
		out = append(out, *cloneOrder(o.s.orders[i]))
	}
	return out, nil
}

func cloneOrder(order domain.Order) *domain.Order {
	out := order
	out.Items = domain.CloneItems(order.Items)
	out.Meta = domain.CloneMeta(order.Meta)
	if order.SessionID != nil {
		sid := *order.SessionID
		out.SessionID = &sid
	}
	return &out
}
