package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no principal could be resolved for the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the principal lacks the role or ownership required
	// for the requested mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers both a missing booking and a booking outside the
	// viewer's visibility scope; callers cannot tell the two apart.
	ErrNotFound = errors.New("booking not found")

	// ErrConflict means the booking's persisted status no longer matches the
	// state the caller observed.
	ErrConflict = errors.New("booking status changed, please reload")

	// ErrInternal is the generic store-failure error surfaced to callers.
	// Details are logged, never returned.
	ErrInternal = errors.New("internal error")
)

// ValidationError reports malformed or semantically invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
