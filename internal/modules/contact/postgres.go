package contact

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL contact repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, m *Message) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		m.Name, m.Email, m.Message).Scan(&m.ID, &m.CreatedAt)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, created_at
		FROM contact_messages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
