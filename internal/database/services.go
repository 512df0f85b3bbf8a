package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beyondborders/internal/models"
)

func (db *DB) CreateService(ctx context.Context, service *models.Service) error {
	query := `INSERT INTO services (id, name, created_at) VALUES (?, ?, ?)`
	now := time.Now().UTC()
	if _, err := db.db.ExecContext(ctx, query, service.ID, service.Name, now); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	service.CreatedAt = now
	return nil
}

func (db *DB) GetService(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT id, name, created_at FROM services WHERE id = ?`

	var service models.Service
	err := db.db.QueryRowContext(ctx, query, id).Scan(&service.ID, &service.Name, &service.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (db *DB) ListServices(ctx context.Context) ([]*models.Service, error) {
	query := `SELECT id, name, created_at FROM services ORDER BY name ASC`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s := &models.Service{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}
	return services, nil
}
