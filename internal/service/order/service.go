package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetthreads/internal/domain"
	orderrepo "budgetthreads/internal/repository/order"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordInput is the payload for a new order record.
type RecordInput struct {
	SessionID       *string                `json:"-"`
	ExternalOrderID string                 `json:"orderId"`
	AmountINR       int64                  `json:"amountINR"`
	Items           []domain.LineItem      `json:"items"`
	Status          string                 `json:"status"`
	Meta            map[string]interface{} `json:"meta"`
}

// Recorder writes immutable order records. Durable-store failures are
// absorbed by the repository it is built with; only validation errors reach
// the caller.
type Recorder struct {
	repo   orderrepo.Repository
	logger *zap.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *Recorder) Record(ctx context.Context, in RecordInput) (*domain.Order, error) {
	externalID := strings.TrimSpace(in.ExternalOrderID)
	if externalID == "" {
		return nil, fmt.Errorf("%w: orderId required", domain.ErrInvalidInput)
	}
	if in.AmountINR < 0 {
		return nil, fmt.Errorf("%w: amountINR must not be negative", domain.ErrInvalidInput)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.OrderStatusPaid
	}
	meta := domain.CloneMeta(in.Meta)
	if meta == nil {
		meta = map[string]interface{}{}
	}

	var sessionID *string
	if in.SessionID != nil && *in.SessionID != "" {
		sid := *in.SessionID
		sessionID = &sid
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		ExternalOrderID: externalID,
		AmountINR:       in.AmountINR,
		Items:           domain.CloneItems(in.Items),
		Status:          status,
		Meta:            meta,
		CreatedAt:       r.now(),
	}
	created, err := r.repo.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	r.logger.Info("order recorded",
		zap.String("id", created.ID),
		zap.String("external_order_id", created.ExternalOrderID),
		zap.Int64("amount_inr", created.AmountINR),
		zap.Int("items", len(created.Items)),
	)
	return created, nil
}

// List returns every recorded order, newest first.
func (r *Recorder) List(ctx context.Context) ([]domain.Order, error) {
	return r.repo.List(ctx)
}
