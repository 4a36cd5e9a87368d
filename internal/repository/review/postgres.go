package review

import (
	"context"

	"budgetthreads/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, rev domain.Review) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO reviews (id, product_id, rating, text, user_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, rev.ID, rev.ProductID, rev.Rating, rev.Text, rev.UserEmail, rev.CreatedAt)
	return err
}

func (r *postgresRepo) List(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, product_id, rating, text, user_email, created_at
FROM reviews
WHERE $1 = '' OR product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Rating, &rev.Text, &rev.UserEmail, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
