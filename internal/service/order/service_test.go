package order

import (
	"context"
	"errors"
	"testing"

	"budgetthreads/internal/domain"
	orderrepo "budgetthreads/internal/repository/order"
	"budgetthreads/internal/repository/memory"
	"budgetthreads/internal/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	created []domain.Order
	err     error
}

func (s *stubRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, o)
	return &o, nil
}

func (s *stubRepo) List(context.Context) ([]domain.Order, error) { return s.created, s.err }

func TestRecord_Defaults(t *testing.T) {
	repo := &stubRepo{}
	rec := New(repo, nil)
	sid := "sid-1"

	o, err := rec.Record(context.Background(), RecordInput{SessionID: &sid, ExternalOrderID: " order_1 ", AmountINR: 617})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "order_1", o.ExternalOrderID)
	assert.Equal(t, domain.OrderStatusPaid, o.Status)
	assert.NotNil(t, o.Items)
	assert.NotNil(t, o.Meta)
	assert.Equal(t, "sid-1", *o.SessionID)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestRecord_KeepsCustomStatus(t *testing.T) {
	o, err := New(&stubRepo{}, nil).Record(context.Background(), RecordInput{ExternalOrderID: "o", Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
	assert.Nil(t, o.SessionID)
}

func TestRecord_Validation(t *testing.T) {
	rec := New(&stubRepo{}, nil)
	_, err := rec.Record(context.Background(), RecordInput{AmountINR: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = rec.Record(context.Background(), RecordInput{ExternalOrderID: "o", AmountINR: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_SnapshotIsIndependentOfCaller(t *testing.T) {
	repo := &stubRepo{}
	img := "a.png"
	items := []domain.LineItem{{ID: "i1", Title: "Tee", Image: &img, Qty: 1}}
	meta := map[string]interface{}{"source": "checkout"}

	_, err := New(repo, nil).Record(context.Background(), RecordInput{ExternalOrderID: "o", Items: items, Meta: meta})
	require.NoError(t, err)

	items[0].Title = "changed"
	*items[0].Image = "b.png"
	meta["source"] = "changed"
	assert.Equal(t, "Tee", repo.created[0].Items[0].Title)
	assert.Equal(t, "a.png", *repo.created[0].Items[0].Image)
	assert.Equal(t, "checkout", repo.created[0].Meta["source"])
}

func TestRecord_DurableFailureStillSucceeds(t *testing.T) {
	mem := memory.New().Orders()
	repo := orderrepo.NewResilient(&stubRepo{err: errors.New("db down")}, mem, resilience.NewPolicy("orders", true, resilience.Settings{}, nil))
	ctx, marker := resilience.WithMarker(context.Background())

	o, err := New(repo, nil).Record(ctx, RecordInput{ExternalOrderID: "order_9", AmountINR: 1})
	require.NoError(t, err)
	assert.Equal(t, "order_9", o.ExternalOrderID)
	assert.True(t, marker.Degraded())

	list, err := mem.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
