package catalog

import (
	"context"
	"math"
	"testing"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/repository/memory"
	"budgetthreads/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ServesSeededCatalog(t *testing.T) {
	products := memory.New().Products()
	require.NoError(t, seed.Apply(context.Background(), products))

	list, err := New(products).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestUpsert(t *testing.T) {
	svc := New(memory.New().Products())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, domain.Product{ID: " ", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Upsert(ctx, domain.Product{ID: "p9", Title: "x", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Upsert(ctx, domain.Product{ID: "p9", Title: "x", Price: math.MaxInt64})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := svc.Upsert(ctx, domain.Product{ID: "p9", Title: " Tee ", Images: []string{"a.jpg", "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Title)
	assert.Equal(t, "a.jpg", p.Image)

	got, err := svc.Get(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "Tee", got.Title)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
