package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO user_profiles (principal, name, email, role)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (principal)
		DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, updated_at = now()
		RETURNING created_at, updated_at`,
		string(p.Principal), p.Name, p.Email, string(p.Role)).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) Get(ctx context.Context, principal identity.Principal) (*Profile, error) {
	p := &Profile{}
	err := r.db.QueryRowContext(ctx, `
		SELECT principal, name, email, role, created_at, updated_at
		FROM user_profiles WHERE principal=$1`, string(principal)).
		Scan(&p.Principal, &p.Name, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no profile for principal %s", principal)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT principal, name, email, role, created_at, updated_at
		FROM user_profiles ORDER BY principal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Profile
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.Principal, &p.Name, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postgresRepository) SetRole(ctx context.Context, principal identity.Principal, role identity.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET role=$1, updated_at=$2 WHERE principal=$3`,
		string(role), time.Now(), string(principal))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("no profile for principal %s", principal)
	}
	return nil
}

func (r *postgresRepository) CountUsers(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_profiles`).Scan(&n)
	return n, err
}
