package booking

import (
	"strings"
	"time"

	"beyondborders/internal/models"
)

// CreateInput is the raw creation request before validation.
type CreateInput struct {
	ServiceID string `json:"serviceId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GroupSize int    `json:"groupSize"`
	Notes     string `json:"notes"`

	// BookingForSomeoneElse switches the guest fields from forbidden to
	// required: either all three are present, or the booking is solo.
	BookingForSomeoneElse bool   `json:"bookingForSomeoneElse"`
	GuestName             string `json:"guestName"`
	GuestEmail            string `json:"guestEmail"`
	GuestPhone            string `json:"guestPhone"`
}

// EditInput carries the administrator-editable fields of an existing booking.
type EditInput struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	GroupSize  int    `json:"groupSize"`
	Notes      string `json:"notes"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
}

// dateFormats are accepted in order: full timestamps from API clients,
// datetime-local values from the edit form, then bare dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateDates(startRaw, endRaw string) (start, end time.Time, err error) {
	start, ok := parseDate(startRaw)
	if !ok {
		return time.Time{}, time.Time{}, validationf("invalid start date: %q", startRaw)
	}
	end, ok = parseDate(endRaw)
	if !ok {
		return time.Time{}, time.Time{}, validationf("invalid end date: %q", endRaw)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validationf("end date must not precede start date")
	}
	return start, end, nil
}

// validateGuest enforces the delegation contract: with the flag set, all
// three contact fields are required; without it, none are stored. Contact
// format checks stay in the form layer, only presence is enforced here.
func validateGuest(delegated bool, name, email, phone string) (*models.Guest, error) {
	if !delegated {
		return nil, nil
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return nil, validationf("guest name, email and phone are all required when booking for someone else")
	}
	return &models.Guest{Name: name, Email: email, Phone: phone}, nil
}

func (in CreateInput) validate() (start, end time.Time, guest *models.Guest, err error) {
	if strings.TrimSpace(in.ServiceID) == "" {
		return time.Time{}, time.Time{}, nil, validationf("service is required")
	}
	start, end, err = validateDates(in.StartDate, in.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	if in.GroupSize < 1 {
		return time.Time{}, time.Time{}, nil, validationf("group size must be at least 1")
	}
	guest, err = validateGuest(in.BookingForSomeoneElse, in.GuestName, in.GuestEmail, in.GuestPhone)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	return start, end, guest, nil
}

func (in EditInput) validate() (start, end time.Time, guest *models.Guest, err error) {
	start, end, err = validateDates(in.StartDate, in.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	if in.GroupSize < 1 {
		return time.Time{}, time.Time{}, nil, validationf("group size must be at least 1")
	}

	// The edit form carries guest fields as a unit: all three or none.
	anySet := strings.TrimSpace(in.GuestName) != "" ||
		strings.TrimSpace(in.GuestEmail) != "" ||
		strings.TrimSpace(in.GuestPhone) != ""
	guest, err = validateGuest(anySet, in.GuestName, in.GuestEmail, in.GuestPhone)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	return start, end, guest, nil
}
