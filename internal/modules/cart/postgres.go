package cart

import (
	"context"
	"database/sql"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, owner identity.Principal) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity FROM cart_items
		WHERE owner=$1 ORDER BY product_id`, string(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Add(ctx context.Context, owner identity.Principal, productID, qty uint64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (owner, product_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (owner, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		string(owner), productID, qty)
	return err
}

func (r *postgresRepo) Set(ctx context.Context, owner identity.Principal, productID, qty uint64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (owner, product_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (owner, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		string(owner), productID, qty)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, owner identity.Principal, productID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE owner=$1 AND product_id=$2`, string(owner), productID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, owner identity.Principal) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE owner=$1`, string(owner))
	return err
}
