package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingReference(t *testing.T) {
	format := regexp.MustCompile(`^HB-[A-Z2-7]{8}$`)

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		ref := NewBookingReference()
		assert.Regexp(t, format, ref)
		assert.False(t, seen[ref], "duplicate booking reference %s", ref)
		seen[ref] = true
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusPending, BookingStatusNoShow, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusNoShow, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusNoShow, BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		booking := &Booking{Status: tc.from}
		assert.Equal(t, tc.allowed, booking.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: BookingStatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: BookingStatusConfirmed}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusNoShow}).IsTerminal())
}

func TestIsModifiable(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	booking := &Booking{
		Status:              BookingStatusConfirmed,
		AppointmentDatetime: now.Add(48 * time.Hour),
	}
	assert.True(t, booking.IsModifiable(now))

	// Exactly 24 hours out is too late; the window requires more than 24
	booking.AppointmentDatetime = now.Add(24 * time.Hour)
	assert.False(t, booking.IsModifiable(now))

	booking.AppointmentDatetime = now.Add(20 * time.Hour)
	assert.False(t, booking.IsModifiable(now))

	// Terminal bookings are never modifiable, however far out
	booking.AppointmentDatetime = now.Add(48 * time.Hour)
	booking.Status = BookingStatusCancelled
	assert.False(t, booking.IsModifiable(now))
}

func TestOccupiedUntil(t *testing.T) {
	end := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	booking := &Booking{EndDatetime: end}

	assert.Equal(t, end.Add(15*time.Minute), booking.OccupiedUntil(15))
	assert.Equal(t, end, booking.OccupiedUntil(0))
}
