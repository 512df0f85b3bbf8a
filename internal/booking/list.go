package booking

import (
	"strings"
	"time"

	"beyondborders/internal/models"
)

// ListQuery is the raw listing request. Status is lenient: anything that is
// not a recognized status means "all". Dates are strict when present.
type ListQuery struct {
	Status   string
	Search   string
	DateFrom string
	DateTo   string
}

// View is the display shape bookings are mapped to before leaving the
// engine: ISO timestamps, service name instead of id, guest reduced to a
// display name. Customer is only populated for administrators.
type View struct {
	ID          string        `json:"id"`
	ServiceName string        `json:"serviceName"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	GroupSize   int           `json:"groupSize"`
	Status      models.Status `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	GuestName   string        `json:"guestName,omitempty"`
	Customer    *CustomerRef  `json:"customer,omitempty"`
}

// CustomerRef identifies the owning account in administrator views.
type CustomerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// normalizeStatusFilter keeps only recognized statuses; everything else,
// including the "all" sentinel and garbage values, widens to no filter.
func normalizeStatusFilter(raw string) models.Status {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return ""
	}
	status, err := models.ParseStatus(strings.ToUpper(raw))
	if err != nil {
		return ""
	}
	return status
}

// matchesSearch runs the case-insensitive text filter over the fields a
// support agent would paste: booking id, owner name or email, service name.
func matchesSearch(row *models.BookingRow, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		row.ID,
		row.OwnerName,
		row.OwnerEmail,
		row.ServiceName,
	}, "\n"))
	return strings.Contains(haystack, search)
}

func viewFromRow(row *models.BookingRow, includeCustomer bool) View {
	view := View{
		ID:          row.ID,
		ServiceName: row.ServiceName,
		StartDate:   row.StartDate.UTC().Format(time.RFC3339),
		EndDate:     row.EndDate.UTC().Format(time.RFC3339),
		GroupSize:   row.GroupSize,
		Status:      row.Status,
		Notes:       row.Notes,
	}
	if row.Guest != nil {
		view.GuestName = row.Guest.Name
	}
	if includeCustomer {
		view.Customer = &CustomerRef{
			ID:    row.OwnerID,
			Name:  row.OwnerName,
			Email: row.OwnerEmail,
		}
	}
	return view
}
