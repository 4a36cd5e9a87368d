package design

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetthreads/internal/domain"
	designrepo "budgetthreads/internal/repository/design"
	"budgetthreads/internal/service/pricing"
	"github.com/google/uuid"
)

// CreateInput is the designer's save payload. Price is accepted only when it
// is a JSON number.
type CreateInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Size        string      `json:"size"`
	FrontImage  string      `json:"frontImage"`
	BackImage   *string     `json:"backImage"`
	Price       interface{} `json:"price"`
}

type Service struct {
	repo designrepo.Repository
	now  func() time.Time
}

func New(repo designrepo.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, sessionID string, in CreateInput) (*domain.Design, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	front := strings.TrimSpace(in.FrontImage)
	if title == "" || description == "" || front == "" {
		return nil, fmt.Errorf("%w: title, description, and frontImage are required", domain.ErrInvalidInput)
	}

	d := domain.Design{
		ID:          "dsg_" + uuid.NewString(),
		Title:       title,
		Description: description,
		Color:       in.Color,
		Size:        in.Size,
		FrontImage:  front,
		CreatedAt:   s.now(),
	}
	if sessionID != "" {
		sid := sessionID
		d.SessionID = &sid
	}
	if in.BackImage != nil && strings.TrimSpace(*in.BackImage) != "" {
		back := strings.TrimSpace(*in.BackImage)
		d.BackImage = &back
	}
	if price, ok := in.Price.(float64); ok && price > 0 {
		if price >= float64(pricing.MaxUnitPrice) {
			d.Price = pricing.MaxUnitPrice
		} else {
			d.Price = int64(price + 0.5)
		}
	}
	return s.repo.Create(ctx, d)
}

// Get returns one saved design, as referenced by a cart line's designId.
func (s *Service) Get(ctx context.Context, id string) (*domain.Design, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: design id required", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// List returns saved designs newest first.
func (s *Service) List(ctx context.Context) ([]domain.Design, error) {
	return s.repo.List(ctx)
}
