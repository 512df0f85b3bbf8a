package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateInput {
	return CreateInput{
		ServiceID: "svc1",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-05",
		GroupSize: 2,
	}
}

func TestParseDateFormats(t *testing.T) {
	for _, raw := range []string{
		"2025-07-01T10:30:00Z",
		"2025-07-01T10:30",
		"2025-07-01",
		" 2025-07-01 ",
	} {
		parsed, ok := parseDate(raw)
		assert.True(t, ok, "expected %q to parse", raw)
		assert.Equal(t, time.July, parsed.Month())
	}

	for _, raw := range []string{"", "tomorrow", "01/07/2025", "2025-13-40"} {
		_, ok := parseDate(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestCreateInputValidate(t *testing.T) {
	in := validCreateInput()
	start, end, guest, err := in.validate()
	require.NoError(t, err)
	assert.Nil(t, guest)
	assert.True(t, end.After(start))

	in = validCreateInput()
	in.ServiceID = "  "
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err), "missing service: %v", err)

	in = validCreateInput()
	in.EndDate = "2025-06-30"
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err), "end before start: %v", err)

	in = validCreateInput()
	in.StartDate = "not-a-date"
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err), "bad start date: %v", err)

	in = validCreateInput()
	in.GroupSize = 0
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err), "zero group size: %v", err)
}

func TestCreateInputValidateGuest(t *testing.T) {
	in := validCreateInput()
	in.BookingForSomeoneElse = true
	in.GuestName = "Jane Doe"
	in.GuestEmail = "jane@example.com"
	in.GuestPhone = "+15550100"

	_, _, guest, err := in.validate()
	require.NoError(t, err)
	require.NotNil(t, guest)
	assert.Equal(t, "Jane Doe", guest.Name)

	// Delegated with a missing field is rejected, not silently downgraded.
	in.GuestPhone = "   "
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err))

	// Guest fields without the flag are ignored entirely.
	in = validCreateInput()
	in.GuestName = "Stray Name"
	_, _, guest, err = in.validate()
	require.NoError(t, err)
	assert.Nil(t, guest)
}

func TestEditInputValidate(t *testing.T) {
	in := EditInput{StartDate: "2025-07-01", EndDate: "2025-07-05", GroupSize: 3}
	_, _, guest, err := in.validate()
	require.NoError(t, err)
	assert.Nil(t, guest)

	// Any guest field set makes all three required.
	in.GuestEmail = "jane@example.com"
	_, _, _, err = in.validate()
	assert.True(t, IsValidation(err))

	in.GuestName = "Jane"
	in.GuestPhone = "+15550100"
	_, _, guest, err = in.validate()
	require.NoError(t, err)
	require.NotNil(t, guest)
	assert.Equal(t, "jane@example.com", guest.Email)
}
