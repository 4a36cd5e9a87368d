package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetthreads/internal/domain"
	cartrepo "budgetthreads/internal/repository/cart"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns session carts. Mutations for one session are serialized
// within the process; reads are not.
type Service struct {
	repo   cartrepo.Repository
	locks  *sessionLocks
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func New(repo cartrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		locks:  newSessionLocks(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return "item_" + uuid.NewString() },
	}
}

// RemoveInput selects either one item or the whole cart.
type RemoveInput struct {
	ItemID string `json:"itemId"`
	Clear  bool   `json:"clear"`
}

// Read returns the cart for sessionID, creating it empty on first access.
func (s *Service) Read(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.repo.Items(ctx, sessionID)
}

// Add normalizes the draft, appends it and returns the stored item together
// with the resulting item count.
func (s *Service) Add(ctx context.Context, sessionID string, d Draft) (*domain.LineItem, int, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, 0, err
	}
	item := d.normalize()
	item.ID = s.newID()
	item.AddedAt = s.now()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.Append(ctx, sessionID, item); err != nil {
		return nil, 0, fmt.Errorf("append item: %w", err)
	}
	items, err := s.repo.Items(ctx, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("read cart: %w", err)
	}
	s.logger.Debug("cart item added",
		zap.String("session_id", sessionID),
		zap.String("item_id", item.ID),
		zap.Int("count", len(items)),
	)
	return &item, len(items), nil
}

// Remove deletes one item by id or clears the cart. A missing item id is
// not an error.
func (s *Service) Remove(ctx context.Context, sessionID string, in RemoveInput) ([]domain.LineItem, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	itemID := strings.TrimSpace(in.ItemID)
	if !in.Clear && itemID == "" {
		return nil, fmt.Errorf("%w: missing itemId or clear=true", domain.ErrInvalidInput)
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if in.Clear {
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}
		return []domain.LineItem{}, nil
	}
	if err := s.repo.Remove(ctx, sessionID, itemID); err != nil {
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return s.repo.Items(ctx, sessionID)
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.Remove(ctx, sessionID, RemoveInput{Clear: true})
	return err
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}
	return nil
}
