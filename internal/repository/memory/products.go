package memory

import (
	"context"

	"budgetthreads/internal/domain"
)

type Products struct {
	s *Store
}

// List returns the catalog in insertion order.
func (p *Products) List(_ context.Context) ([]domain.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]domain.Product, len(p.s.products))
	copy(out, p.s.products)
	return out, nil
}

func (p *Products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for _, prod := range p.s.products {
		if prod.ID == id {
			out := prod
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Upsert replaces the product with the same id or appends it.
func (p *Products) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for i := range p.s.products {
		if p.s.products[i].ID == product.ID {
			product.CreatedAt = p.s.products[i].CreatedAt
			p.s.products[i] = product
			return &product, nil
		}
	}
	p.s.products = append(p.s.products, product)
	return &product, nil
}
