package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beyondborders/internal/models"
)

// UpsertUser creates or refreshes an account record mirrored from the
// identity provider. Role changes only land through this path.
func (db *DB) UpsertUser(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, email, name, phone, role, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            email = excluded.email,
            name = excluded.name,
            phone = COALESCE(excluded.phone, phone),
            role = excluded.role,
            updated_at = excluded.updated_at
    `
	now := time.Now().UTC()
	_, err := db.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		nullable(user.Phone),
		user.Role,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, COALESCE(name, ''), COALESCE(phone, ''), role, created_at, updated_at
              FROM users WHERE id = ?`

	var user models.User
	err := db.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
