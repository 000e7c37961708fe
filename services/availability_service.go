package services

import (
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/gorm"
)

// DateAvailability reports whether a calendar date has at least one open slot
type DateAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// IsSlotAvailable answers "is this exact instant+duration bookable" for a
// scope: the interval must sit within the resolved availability rules for
// its date and clear the point-form conflict check against the live store.
// Unavailability is a normal false result, never an error.
//
// excludeBookingID removes one booking from conflict consideration (used
// when rescheduling); pass "" otherwise.
func IsSlotAvailable(db *gorm.DB, location *models.Location, staffMemberID *string, tz *time.Location, start time.Time, durationMinutes int, excludeBookingID string) (bool, error) {
	if durationMinutes <= 0 {
		return false, nil
	}

	localStart := start.In(tz)
	startMinute := localStart.Hour()*60 + localStart.Minute()
	endMinute := startMinute + durationMinutes
	if endMinute > 24*60 {
		return false, nil // Crosses midnight; no rule window can cover it
	}

	scope := ResourceScope{
		BusinessID:    location.BusinessID,
		LocationID:    location.ID,
		StaffMemberID: staffMemberID,
	}

	available, blocking, err := BlocksForDate(db, scope, localStart)
	if err != nil {
		return false, err
	}
	if !IsWithinRules(available, blocking, startMinute, endMinute) {
		return false, nil
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	conflict, err := HasBookingConflictAt(db, scope, start, end, location.BookingBufferMinutes, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// ListSlotsForDate lists every open slot of the requested duration on a
// calendar date for a scope, in ascending time order. Existing bookings for
// the day are fetched once and filtered with the batch-form conflict check.
func ListSlotsForDate(db *gorm.DB, location *models.Location, staffMemberID *string, tz *time.Location, date time.Time, durationMinutes int) ([]models.TimeSlot, error) {
	localDate := date.In(tz)
	dayStart := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), 0, 0, 0, 0, tz)
	dayEnd := dayStart.Add(24 * time.Hour)

	scope := ResourceScope{
		BusinessID:    location.BusinessID,
		LocationID:    location.ID,
		StaffMemberID: staffMemberID,
	}

	available, blocking, err := BlocksForDate(db, scope, dayStart)
	if err != nil {
		return nil, err
	}

	candidates := GenerateDaySlots(available, blocking, dayStart, durationMinutes, tz)
	if len(candidates) == 0 {
		return []models.TimeSlot{}, nil
	}

	bookings, err := GetBookingsForWindow(db, scope, dayStart, dayEnd, location.BookingBufferMinutes)
	if err != nil {
		return nil, err
	}

	slots := make([]models.TimeSlot, 0, len(candidates))
	for _, candidate := range candidates {
		if HasBookingConflict(bookings, candidate.StartTime, candidate.EndTime, location.BookingBufferMinutes) {
			continue
		}
		slots = append(slots, candidate)
	}
	return slots, nil
}

// ListAvailableDates reports, for each of the next daysAhead calendar days
// starting today, whether the scope has at least one open slot of the
// requested duration. Today's slots must additionally respect the location's
// minimum notice.
func ListAvailableDates(db *gorm.DB, clock Clock, location *models.Location, staffMemberID *string, tz *time.Location, durationMinutes int, daysAhead int) ([]DateAvailability, error) {
	now := clock.Now().In(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)
	earliest := now.Add(time.Duration(location.MinNoticeHours) * time.Hour)

	dates := make([]DateAvailability, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		day := today.AddDate(0, 0, i)

		slots, err := ListSlotsForDate(db, location, staffMemberID, tz, day, durationMinutes)
		if err != nil {
			return nil, err
		}

		hasSlot := false
		for _, slot := range slots {
			if i == 0 && slot.StartTime.Before(earliest) {
				continue
			}
			hasSlot = true
			break
		}

		dates = append(dates, DateAvailability{
			Date:      day.Format("2006-01-02"),
			Available: hasSlot,
		})
	}
	return dates, nil
}

// LocationTimezone loads the business timezone for a location, falling back
// to UTC if it is missing or invalid
func LocationTimezone(business *models.Business) *time.Location {
	tz, err := time.LoadLocation(business.Timezone)
	if err != nil {
		return time.UTC
	}
	return tz
}
