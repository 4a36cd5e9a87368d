package design

import (
	"context"
	"errors"

	"budgetthreads/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const designColumns = `id, session_id, title, description, color, size, front_image, back_image, price, created_at`

func (r *postgresRepo) Create(ctx context.Context, d domain.Design) (*domain.Design, error) {
	q := `
INSERT INTO designs (id, session_id, title, description, color, size, front_image, back_image, price, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + designColumns
	return scanDesign(r.pool.QueryRow(ctx, q, d.ID, d.SessionID, d.Title, d.Description, d.Color, d.Size, d.FrontImage, d.BackImage, d.Price, d.CreatedAt))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Design, error) {
	d, err := scanDesign(r.pool.QueryRow(ctx, `SELECT `+designColumns+` FROM designs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return d, err
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Design, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+designColumns+` FROM designs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designs := []domain.Design{}
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

func scanDesign(row pgx.Row) (*domain.Design, error) {
	var d domain.Design
	err := row.Scan(&d.ID, &d.SessionID, &d.Title, &d.Description, &d.Color, &d.Size, &d.FrontImage, &d.BackImage, &d.Price, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
