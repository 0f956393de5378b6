package wishlist

import (
	"context"
	"database/sql"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL wishlist repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, owner identity.Principal) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id FROM wishlist_items
		WHERE owner=$1 ORDER BY product_id`, string(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Add(ctx context.Context, owner identity.Principal, productID uint64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (owner, product_id)
		VALUES ($1,$2)
		ON CONFLICT (owner, product_id) DO NOTHING`, string(owner), productID)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, owner identity.Principal, productID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE owner=$1 AND product_id=$2`, string(owner), productID)
	return err
}
