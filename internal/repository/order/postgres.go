package order

import (
	"context"

	"budgetthreads/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, session_id, external_order_id, amount_inr, items, status, meta, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	q := `
INSERT INTO orders (id, session_id, external_order_id, amount_inr, items, status, meta, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + orderColumns
	created, err := scanOrder(r.pool.QueryRow(ctx, q, o.ID, o.SessionID, o.ExternalOrderID, o.AmountINR, o.Items, o.Status, o.Meta, o.CreatedAt))
	if err != nil {
		r.logger.Warn("order repo: create failed", zap.String("external_order_id", o.ExternalOrderID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("order repo: created", zap.String("id", created.ID), zap.String("external_order_id", created.ExternalOrderID))
	return created, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.SessionID,
		&o.ExternalOrderID,
		&o.AmountINR,
		&o.Items,
		&o.Status,
		&o.Meta,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if o.Items == nil {
		o.Items = []domain.LineItem{}
	}
	return &o, nil
}
