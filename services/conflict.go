package services

import (
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/gorm"
)

// Conflict detection comes in two forms that must agree: a batch form over a
// prefetched set of bookings (used when sweeping a whole day of candidates)
// and a point form expressed as a single SQL interval predicate evaluated by
// the store (used as the write-time gate, so it observes the most current
// committed state).
//
// Both share one overlap rule: a booking occupies
// [appointment_datetime, end_datetime + buffer), half-open. The buffer
// extends only the existing booking's end - a new booking must start at
// least buffer minutes after an existing one ends, but its own end needs no
// trailing gap of its own.

// occupiedOverlaps is the shared predicate behind both forms
func occupiedOverlaps(candStart, candEnd time.Time, booking models.Booking, bufferMinutes int) bool {
	return OverlapsTime(candStart, candEnd, booking.AppointmentDatetime, booking.OccupiedUntil(bufferMinutes))
}

// occupiesSlot reports whether a booking in this status holds its interval.
// Cancelled and no-show bookings never occupy.
func occupiesSlot(status string) bool {
	return status != models.BookingStatusCancelled && status != models.BookingStatusNoShow
}

var nonOccupyingStatuses = []string{models.BookingStatusCancelled, models.BookingStatusNoShow}

// HasBookingConflict is the batch form: tests a candidate interval against a
// prefetched booking set
func HasBookingConflict(bookings []models.Booking, candStart, candEnd time.Time, bufferMinutes int) bool {
	for _, booking := range bookings {
		if !occupiesSlot(booking.Status) {
			continue
		}
		if occupiedOverlaps(candStart, candEnd, booking, bufferMinutes) {
			return true
		}
	}
	return false
}

// HasBookingConflictAt is the point form: a single store-evaluated interval
// query for one candidate. The occupied-interval comparison
// (booking start < candidate end AND booking end + buffer > candidate start)
// is expressed portably by shifting the candidate start back by the buffer
// instead of computing the buffered end in SQL.
//
// excludeBookingID removes one booking from consideration, used when
// rescheduling so a booking does not conflict with itself.
func HasBookingConflictAt(db *gorm.DB, scope ResourceScope, candStart, candEnd time.Time, bufferMinutes int, excludeBookingID string) (bool, error) {
	bufferedStart := candStart.Add(-time.Duration(bufferMinutes) * time.Minute)

	query := db.Model(&models.Booking{}).
		Where("location_id = ?", scope.LocationID).
		Where("status NOT IN ?", nonOccupyingStatuses).
		Where("appointment_datetime < ? AND end_datetime > ?", candEnd, bufferedStart)

	// An unassigned booking occupies the location as a whole, so it blocks
	// every staff member; a location-level check sees all bookings.
	if scope.StaffMemberID != nil {
		query = query.Where("staff_member_id IS NULL OR staff_member_id = ?", *scope.StaffMemberID)
	}

	if excludeBookingID != "" {
		query = query.Where("id != ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBookingsForWindow prefetches the bookings whose occupied interval can
// touch [windowStart, windowEnd) for a scope, for use with the batch form.
// The window start is widened by the buffer so a booking ending just before
// the window still excludes its trailing buffer.
func GetBookingsForWindow(db *gorm.DB, scope ResourceScope, windowStart, windowEnd time.Time, bufferMinutes int) ([]models.Booking, error) {
	bufferedStart := windowStart.Add(-time.Duration(bufferMinutes) * time.Minute)

	query := db.Where("location_id = ?", scope.LocationID).
		Where("status NOT IN ?", nonOccupyingStatuses).
		Where("appointment_datetime < ? AND end_datetime > ?", windowEnd, bufferedStart)

	if scope.StaffMemberID != nil {
		query = query.Where("staff_member_id IS NULL OR staff_member_id = ?", *scope.StaffMemberID)
	}

	var bookings []models.Booking
	err := query.Order("appointment_datetime asc").Find(&bookings).Error
	return bookings, err
}
