package catalog

import (
	"context"
	"fmt"
	"strings"

	"budgetthreads/internal/domain"
	productrepo "budgetthreads/internal/repository/product"
	"budgetthreads/internal/service/pricing"
)

// Service exposes the product catalog.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Upsert validates and stores a product keyed by id.
func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	if p.ID == "" || p.Title == "" {
		return nil, fmt.Errorf("%w: product id and title required", domain.ErrInvalidInput)
	}
	if p.Price < 0 || p.Price > pricing.MaxUnitPrice {
		return nil, fmt.Errorf("%w: product %s price out of range", domain.ErrInvalidInput, p.ID)
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return s.repo.Upsert(ctx, p)
}
