package memory

import (
	"context"

	"budgetthreads/internal/domain"
)

type Reviews struct {
	s *Store
}

func (r *Reviews) Create(_ context.Context, review domain.Review) error {
	r.s.mu.Lock()
	r.s.reviews = append(r.s.reviews, review)
	r.s.mu.Unlock()
	return nil
}

// List returns reviews newest first, filtered by product when productID is set.
func (r *Reviews) List(_ context.Context, productID string) ([]domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Review{}
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		rev := r.s.reviews[i]
		if productID != "" && rev.ProductID != productID {
			continue
		}
		out = append(out, rev)
	}
	return out, nil
}
