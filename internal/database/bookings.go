package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beyondborders/internal/models"
)

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				id, owner_id, service_id, start_date, end_date, group_size,
				status, notes, guest_name, guest_email, guest_phone, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	_, err := db.db.ExecContext(ctx, query,
		booking.ID,
		booking.OwnerID,
		booking.ServiceID,
		booking.StartDate.UTC(),
		booking.EndDate.UTC(),
		booking.GroupSize,
		booking.Status,
		nullable(booking.Notes),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Name }),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Email }),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Phone }),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT id, owner_id, service_id, start_date, end_date, group_size,
	                 status, notes, guest_name, guest_email, guest_phone, created_at, updated_at
              FROM bookings WHERE id = ?`
	row := db.db.QueryRowContext(ctx, query, id)

	booking, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus is a conditional write: the row is touched only if its
// persisted status still equals from. Zero affected rows means another
// request transitioned the booking first.
func (db *DB) UpdateBookingStatus(ctx context.Context, id string, from, to models.Status) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (db *DB) UpdateBookingDetails(ctx context.Context, booking *models.Booking) error {
	query := `UPDATE bookings SET start_date = ?, end_date = ?, group_size = ?, notes = ?,
	                 guest_name = ?, guest_email = ?, guest_phone = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now().UTC()
	result, err := db.db.ExecContext(ctx, query,
		booking.StartDate.UTC(),
		booking.EndDate.UTC(),
		booking.GroupSize,
		nullable(booking.Notes),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Name }),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Email }),
		guestField(booking.Guest, func(g *models.Guest) string { return g.Phone }),
		now,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking details: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	booking.UpdatedAt = now
	return nil
}

// GetBookingRow returns one booking joined with its owner and service.
func (db *DB) GetBookingRow(ctx context.Context, id string) (*models.BookingRow, error) {
	query := selectRows + ` WHERE b.id = ?`
	row := db.db.QueryRowContext(ctx, query, id)

	out, err := scanBookingRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking row: %w", err)
	}
	return out, nil
}

const selectRows = `SELECT b.id, b.owner_id, b.service_id, b.start_date, b.end_date, b.group_size,
	       b.status, b.notes, b.guest_name, b.guest_email, b.guest_phone, b.created_at, b.updated_at,
	       COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(s.name, '')
	FROM bookings b
	LEFT JOIN users u ON u.id = b.owner_id
	LEFT JOIN services s ON s.id = b.service_id`

// ListBookingRows applies the filter and returns rows ordered by start date
// descending, ties broken by id ascending for deterministic output.
func (db *DB) ListBookingRows(ctx context.Context, filter models.BookingFilter) ([]*models.BookingRow, error) {
	query := selectRows
	var conds []string
	var args []any

	if filter.OwnerID != "" {
		conds = append(conds, "b.owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Status != "" {
		conds = append(conds, "b.status = ?")
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "b.start_date >= ?")
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		conds = append(conds, "b.end_date <= ?")
		args = append(args, filter.To.UTC())
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY b.start_date DESC, b.id ASC"

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var out []*models.BookingRow
	for rows.Next() {
		r, err := scanBookingRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking rows: %w", err)
	}
	return out, nil
}

func scanBooking(scan func(dest ...any) error) (*models.Booking, error) {
	var b models.Booking
	var notes, guestName, guestEmail, guestPhone sql.NullString
	err := scan(
		&b.ID, &b.OwnerID, &b.ServiceID, &b.StartDate, &b.EndDate, &b.GroupSize,
		&b.Status, &notes, &guestName, &guestEmail, &guestPhone, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyNullable(&b, notes, guestName, guestEmail, guestPhone)
	return &b, nil
}

func scanBookingRow(scan func(dest ...any) error) (*models.BookingRow, error) {
	var r models.BookingRow
	var notes, guestName, guestEmail, guestPhone sql.NullString
	err := scan(
		&r.ID, &r.OwnerID, &r.ServiceID, &r.StartDate, &r.EndDate, &r.GroupSize,
		&r.Status, &notes, &guestName, &guestEmail, &guestPhone, &r.CreatedAt, &r.UpdatedAt,
		&r.OwnerName, &r.OwnerEmail, &r.ServiceName,
	)
	if err != nil {
		return nil, err
	}
	applyNullable(&r.Booking, notes, guestName, guestEmail, guestPhone)
	return &r, nil
}

func applyNullable(b *models.Booking, notes, guestName, guestEmail, guestPhone sql.NullString) {
	b.Notes = notes.String
	if guestName.Valid || guestEmail.Valid || guestPhone.Valid {
		b.Guest = &models.Guest{
			Name:  guestName.String,
			Email: guestEmail.String,
			Phone: guestPhone.String,
		}
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func guestField(g *models.Guest, pick func(*models.Guest) string) any {
	if g == nil {
		return nil
	}
	return pick(g)
}
