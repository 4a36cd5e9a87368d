package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetthreads/internal/domain"
	reviewrepo "budgetthreads/internal/repository/review"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	ProductID string      `json:"productId"`
	Rating    interface{} `json:"rating"`
	Text      string      `json:"text"`
	UserEmail string      `json:"userEmail"`
}

type Service struct {
	repo reviewrepo.Repository
	now  func() time.Time
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores a review with the rating clamped to 1..5.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Review, error) {
	productID := strings.TrimSpace(in.ProductID)
	rating, ok := parseRating(in.Rating)
	if productID == "" || !ok {
		return nil, fmt.Errorf("%w: missing productId or rating", domain.ErrInvalidInput)
	}

	r := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Rating:    clamp(rating, minRating, maxRating),
		Text:      strings.TrimSpace(in.Text),
		CreatedAt: s.now(),
	}
	if email := strings.TrimSpace(in.UserEmail); email != "" {
		r.UserEmail = &email
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns reviews newest first, filtered by product when productID is
// not empty.
func (s *Service) List(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.repo.List(ctx, strings.TrimSpace(productID))
}

const (
	minRating = 1
	maxRating = 5
)

// parseRating bounds the rating before converting, since IntPart wraps
// past int64.
func parseRating(v interface{}) (int, bool) {
	var d decimal.Decimal
	switch x := v.(type) {
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		d = parsed
	default:
		return 0, false
	}
	if d.IsZero() {
		return 0, false
	}
	d = d.Round(0)
	switch {
	case d.LessThan(decimal.NewFromInt(minRating)):
		return minRating, true
	case d.GreaterThan(decimal.NewFromInt(maxRating)):
		return maxRating, true
	}
	return int(d.IntPart()), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
