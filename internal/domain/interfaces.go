package domain

import (
	"context"

	"beyondborders/internal/models"
)

// Repository is the persistent store contract the booking engine writes
// through. Status updates are conditional: implementations must compare the
// current persisted status against the expected one atomically.
type Repository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingRow(ctx context.Context, id string) (*models.BookingRow, error)
	UpdateBookingStatus(ctx context.Context, id string, from, to models.Status) error
	UpdateBookingDetails(ctx context.Context, booking *models.Booking) error
	ListBookingRows(ctx context.Context, filter models.BookingFilter) ([]*models.BookingRow, error)

	UpsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]*models.Service, error)
}

// SessionRepository maps opaque session tokens to account ids. The identity
// provider writes sessions; the engine only reads them.
type SessionRepository interface {
	Resolve(ctx context.Context, token string) (string, error)
	Put(ctx context.Context, token, userID string) error
	Delete(ctx context.Context, token string) error
}

// EventPublisher fans booking lifecycle events out to in-process consumers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
