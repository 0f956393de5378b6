package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tmwanza/storefront-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, name, description, price, stock, category, image_file, created_at, updated_at`

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock, category, image_file)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageFile).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id uint64) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.ImageFile, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *postgresRepo) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category=$1 ORDER BY id`, category)
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, stock=$4, category=$5, image_file=$6, updated_at=$7
		WHERE id=$8`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageFile, time.Now(), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, apperr.NotFound("product %d not found", p.ID))
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, apperr.NotFound("product %d not found", id))
}

func (r *postgresRepo) SetStock(ctx context.Context, id uint64, stock uint64) (*Product, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock=$1, updated_at=$2 WHERE id=$3`, stock, time.Now(), id)
	if err != nil {
		return nil, err
	}
	if err := requireRow(res, apperr.NotFound("product %d not found", id)); err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

func (r *postgresRepo) CountProducts(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("category %q already exists", c.Name)
	}
	return err
}

func (r *postgresRepo) GetCategory(ctx context.Context, id uint64) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id=$1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("category %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name=$1 WHERE id=$2`, c.Name, c.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("category %q already exists", c.Name)
	}
	if err != nil {
		return err
	}
	return requireRow(res, apperr.NotFound("category %d not found", c.ID))
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, apperr.NotFound("category %d not found", id))
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.Category, &p.ImageFile, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
