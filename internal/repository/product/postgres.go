package product

import (
	"context"
	"errors"

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

const productColumns = `id, title, COALESCE(description, ''), price, COALESCE(image, ''), images, COALESCE(badge, ''), sizes, COALESCE(color, ''), created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		r.logger.Warn("product repo: list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("product repo: list rows failed", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Warn("product repo: get failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, price, image, images, badge, sizes, color)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, NULLIF($9, ''))
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image = EXCLUDED.image,
    images = EXCLUDED.images,
    badge = EXCLUDED.badge,
    sizes = EXCLUDED.sizes,
    color = EXCLUDED.color
RETURNING ` + productColumns
	images := product.Images
	if images == nil {
		images = []string{}
	}
	sizes := product.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		images,
		product.Badge,
		sizes,
		product.Color,
	))
	if err != nil {
		r.logger.Warn("product repo: upsert failed", zap.String("id", product.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: upserted", zap.String("id", res.ID), zap.String("title", res.Title))
	return res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Images, &p.Badge, &p.Sizes, &p.Color, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
