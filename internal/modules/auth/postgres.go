package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tmwanza/storefront-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL credential repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Credential) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO credentials (principal, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING created_at`,
		string(c.Principal), c.Email, c.PasswordHash).Scan(&c.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Conflict("email %s is already registered", c.Email)
	}
	return err
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	c := &Credential{}
	err := r.db.QueryRowContext(ctx, `
		SELECT principal, email, password_hash, created_at
		FROM credentials WHERE email=$1`, email).
		Scan(&c.Principal, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no credential for %s", email)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
