package user

import (
	"context"
	"errors"

	"budgetthreads/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id::text, name, email, password_hash, COALESCE(token, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	q := `
INSERT INTO users (id, name, email, password_hash, token, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Token, u.CreatedAt))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE token = $1 LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, token))
}

func (r *postgresRepo) SetToken(ctx context.Context, id, token string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET token = NULLIF($2, '') WHERE id::text = $1`, id, token)
	if err != nil {
		r.logger.Warn("user repo: set token failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Token, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Warn("user repo: scan failed", zap.Error(err))
		return nil, err
	}
	return &u, nil
}
