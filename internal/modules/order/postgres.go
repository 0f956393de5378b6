package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder runs the entire placement in one transaction: every product
// row is locked, checked, and decremented before the order and its items
// are inserted and the owner's cart rows are deleted. Any failure rolls
// the whole thing back.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range o.Items {
		var stock uint64
		err := tx.QueryRowContext(ctx,
			`SELECT stock FROM products WHERE id=$1 FOR UPDATE`, item.ProductID).Scan(&stock)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("product %d not found", item.ProductID)
		}
		if err != nil {
			return fmt.Errorf("lock product %d: %w", item.ProductID, err)
		}
		if stock < item.Quantity {
			return apperr.InsufficientStock("product %d has %d in stock, %d requested", item.ProductID, stock, item.Quantity)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = now() WHERE id=$2`,
			item.Quantity, item.ProductID); err != nil {
			return fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status, created_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		string(o.UserID), o.Total, o.Status, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1,$2,$3)`, o.ID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE owner=$1`, string(o.UserID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrder(ctx context.Context, id uint64) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListByUser(ctx context.Context, user identity.Principal) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders WHERE user_id=$1 ORDER BY id`, string(user))
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders ORDER BY id`)
}

// UpdateStatus is a compare-and-swap: the row only changes while it still
// holds the expected source status.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id uint64, from, to Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1 WHERE id=$2 AND status=$3`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.InvalidTransition("order %d is no longer %s", id, from)
	}
	return nil
}

func (r *postgresRepo) GetProductPrice(ctx context.Context, productID uint64) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT price FROM products WHERE id=$1`, productID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperr.NotFound("product %d not found", productID)
	}
	return price, err
}

func (r *postgresRepo) OrderTotals(ctx context.Context) (uint64, decimal.Decimal, error) {
	var count uint64
	var sales decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0)
		FROM orders`).Scan(&count, &sales)
	return count, sales, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uint64) ([]cart.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity FROM order_items
		WHERE order_id=$1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []cart.Item
	for rows.Next() {
		var item cart.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
