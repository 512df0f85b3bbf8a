package notify

import (
	"context"

	"beyondborders/internal/models"

	"github.com/rs/zerolog"
)

// Notification is the delivery request handed to a Sender after a booking
// lifecycle event. Actual channel (email, SMS) is the sender's concern.
type Notification struct {
	Event      string
	BookingID  string
	OwnerID    string
	GuestEmail string
	Status     models.Status
}

// Sender delivers a notification. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender writes notifications to the log instead of delivering them.
// It is the default until a real delivery channel is configured.
type LogSender struct {
	logger *zerolog.Logger
}

func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, n Notification) error {
	s.logger.Info().
		Str("event", n.Event).
		Str("booking_id", n.BookingID).
		Str("owner_id", n.OwnerID).
		Str("status", string(n.Status)).
		Msg("notification dispatched")
	return nil
}
