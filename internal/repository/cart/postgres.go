package cart

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

const ensureCart = `
INSERT INTO carts (session_id)
VALUES ($1)
ON CONFLICT (session_id) DO NOTHING
`

func (r *postgresRepo) Items(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	if _, err := r.pool.Exec(ctx, ensureCart, sessionID); err != nil {
		return nil, err
	}

	const q = `
SELECT id, title, price, image, design_id, product_id, qty, meta, added_at
FROM cart_items
WHERE session_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(
			&it.ID,
			&it.Title,
			&it.Price,
			&it.Image,
			&it.DesignID,
			&it.ProductID,
			&it.Qty,
			&it.Meta,
			&it.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("cart repo: items", zap.String("session_id", sessionID), zap.Int("count", len(items)))
	return items, nil
}

func (r *postgresRepo) Append(ctx context.Context, sessionID string, item domain.LineItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, ensureCart, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (id, session_id, title, price, image, design_id, product_id, qty, meta, added_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, item.ID, sessionID, item.Title, item.Price, item.Image, item.DesignID, item.ProductID, item.Qty, item.Meta, item.AddedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Remove(ctx context.Context, sessionID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE session_id = $1 AND id = $2
`, sessionID, itemID)
	if err != nil {
		return err
	}
	r.logger.Debug("cart repo: remove", zap.String("session_id", sessionID), zap.String("item_id", itemID), zap.Int64("rows", cmd.RowsAffected()))
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	return err
}
