package models

import "time"

// Service is a catalog entry bookings refer to. The engine treats it as an
// opaque foreign reference; the catalog owns its contents.
type Service struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
