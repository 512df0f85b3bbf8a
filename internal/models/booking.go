package models

import "time"

// Booking is a request for a travel service over a date range, owned by one account.
// Bookings are never hard-deleted; cancellation is the terminal representation of removal.
type Booking struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	ServiceID string    `json:"serviceId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	GroupSize int       `json:"groupSize"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	Guest     *Guest    `json:"guest,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Guest is the third-party traveler a booking was delegated to.
// A nil Guest means the owner travels themselves; a non-nil Guest always
// carries all three contact fields.
type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingRow is a booking joined with its owner and service records,
// as read by the listing and detail queries.
type BookingRow struct {
	Booking
	OwnerName   string
	OwnerEmail  string
	ServiceName string
}

// BookingFilter narrows a listing query. Zero values mean "no restriction".
type BookingFilter struct {
	OwnerID string
	Status  Status
	From    time.Time
	To      time.Time
}
