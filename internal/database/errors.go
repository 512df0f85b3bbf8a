package database

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStatusConflict is returned when a conditional status update finds
	// the booking in a different status than the caller observed.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)
