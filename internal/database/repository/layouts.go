package repository

import (
	"context"
	"database/sql"
	"errors"

	"coindeck/internal/database"
)

// LayoutRepo stores serialized workspace layouts, one row per named layout.
type LayoutRepo struct {
	db *sql.DB
}

func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

// Save upserts the payload under name.
func (r *LayoutRepo) Save(ctx context.Context, name, payload string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO layouts(name, payload, updated_at) VALUES(?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at;
	`, name, payload, database.Now())
	return err
}

// Load returns the stored payload, or "" when no layout exists under name.
func (r *LayoutRepo) Load(ctx context.Context, name string) (string, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM layouts WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// Delete removes a named layout.
func (r *LayoutRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	return err
}
