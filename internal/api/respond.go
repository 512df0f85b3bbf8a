package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"beyondborders/internal/booking"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeEngineError maps the engine taxonomy onto HTTP statuses. Validation
// and authorization failures keep their message; internal failures never
// leak detail past the generic text.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized, please login")
	case booking.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, booking.ErrNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, booking.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
