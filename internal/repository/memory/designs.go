package memory

import (
	"context"

	"budgetthreads/internal/domain"
)

type Designs struct {
	s *Store
}

func (d *Designs) Create(_ context.Context, design domain.Design) (*domain.Design, error) {
	d.s.mu.Lock()
	d.s.designs = append(d.s.designs, design)
	d.s.mu.Unlock()
	return &design, nil
}

func (d *Designs) GetByID(_ context.Context, id string) (*domain.Design, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	for _, design := range d.s.designs {
		if design.ID == id {
			out := design
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns designs newest first.
func (d *Designs) List(_ context.Context) ([]domain.Design, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	out := make([]domain.Design, 0, len(d.s.designs))
	for i := len(d.s.designs) - 1; i >= 0; i-- {
		out = append(out, d.s.designs[i])
	}
	return out, nil
}
