package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/gorm"
)

// Policy rejection reasons. These are expected, recoverable outcomes carried
// to the caller verbatim, not internal failures.
var (
	ErrNotAcceptingBookings = errors.New("not accepting bookings")
	ErrInsufficientNotice   = errors.New("insufficient notice")
	ErrTooFarInAdvance      = errors.New("too far in advance")
	ErrSlotNotAvailable     = errors.New("slot not available")

	ErrBookingNotModifiable = errors.New("booking can no longer be changed")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrNoServicesSelected   = errors.New("at least one service must be selected")
)

// IsPolicyRejection reports whether an error is one of the enumerated
// booking policy reasons
func IsPolicyRejection(err error) bool {
	return errors.Is(err, ErrNotAcceptingBookings) ||
		errors.Is(err, ErrInsufficientNotice) ||
		errors.Is(err, ErrTooFarInAdvance) ||
		errors.Is(err, ErrSlotNotAvailable)
}

// isLockContention recognizes sqlite busy/locked errors from the driver. A
// write transaction that loses the race for a slot can surface one instead
// of reaching the availability re-check; the slot is taken either way.
func isLockContention(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

// CheckAvailability enforces booking policy for a candidate instant, in
// order: resource accepts bookings, minimum notice, advance-booking window,
// then the availability check itself. It returns the first failing reason
// or nil; it never reports partial results.
func CheckAvailability(db *gorm.DB, clock Clock, business *models.Business, location *models.Location, staff *models.StaffMember, start time.Time, durationMinutes int, excludeBookingID string) error {
	if !business.IsActive || !location.IsBookable() {
		return ErrNotAcceptingBookings
	}
	if staff != nil && !staff.IsBookable() {
		return ErrNotAcceptingBookings
	}

	now := clock.Now()
	if start.Before(now.Add(time.Duration(location.MinNoticeHours) * time.Hour)) {
		return ErrInsufficientNotice
	}
	if start.After(now.AddDate(0, 0, location.AdvanceBookingDays)) {
		return ErrTooFarInAdvance
	}

	var staffID *string
	if staff != nil {
		staffID = &staff.ID
	}

	tz := LocationTimezone(business)
	available, err := IsSlotAvailable(db, location, staffID, tz, start, durationMinutes, excludeBookingID)
	if err != nil {
		return err
	}
	if !available {
		return ErrSlotNotAvailable
	}
	return nil
}

// CreateBookingInput carries everything needed to place a booking
type CreateBookingInput struct {
	Business *models.Business
	Location *models.Location
	Staff    *models.StaffMember // nil when booking the location as a whole

	ServiceIDs []string
	Start      time.Time

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	PetName       string
	PetType       string
	Notes         *string
}

// CreateBooking re-checks availability at write time and persists the
// booking with its service line items as one atomic unit. The re-check and
// the insert share a transaction, so of two requests racing for the same
// slot exactly one succeeds and the other gets ErrSlotNotAvailable.
//
// This is the only path by which a slot is reserved.
func CreateBooking(db *gorm.DB, clock Clock, input CreateBookingInput) (*models.Booking, error) {
	if len(input.ServiceIDs) == 0 {
		return nil, ErrNoServicesSelected
	}

	var selected []models.Service
	err := db.Where("business_id = ? AND id IN ? AND is_active = ?", input.Business.ID, input.ServiceIDs, true).
		Find(&selected).Error
	if err != nil {
		return nil, err
	}
	if len(selected) != len(input.ServiceIDs) {
		return nil, gorm.ErrRecordNotFound
	}

	// Snapshot the services in the order they were requested; the live
	// services may be edited or deleted later without touching the booking
	byID := make(map[string]models.Service, len(selected))
	for _, service := range selected {
		byID[service.ID] = service
	}

	totalDuration := 0
	totalPrice := 0.0
	items := make([]models.BookingItem, 0, len(input.ServiceIDs))
	for order, serviceID := range input.ServiceIDs {
		service := byID[serviceID]
		serviceRef := service.ID
		items = append(items, models.BookingItem{
			ServiceID:       &serviceRef,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			DisplayOrder:    order,
		})
		totalDuration += service.DurationMinutes
		totalPrice += service.Price
	}

	status := models.BookingStatusPending
	if input.Location.AutoConfirmBookings {
		status = models.BookingStatusConfirmed
	}

	var serviceID *string
	if len(input.ServiceIDs) == 1 {
		serviceID = &input.ServiceIDs[0]
	}

	var staffID *string
	if input.Staff != nil {
		staffID = &input.Staff.ID
	}

	booking := &models.Booking{
		BusinessID:          input.Business.ID,
		LocationID:          input.Location.ID,
		StaffMemberID:       staffID,
		ServiceID:           serviceID,
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		PetName:             input.PetName,
		PetType:             input.PetType,
		AppointmentDatetime: input.Start.UTC(),
		EndDatetime:         input.Start.UTC().Add(time.Duration(totalDuration) * time.Minute),
		DurationMinutes:     totalDuration,
		Status:              status,
		Price:               totalPrice,
		Notes:               input.Notes,
	}

	assertItemTotals(booking, items)

	err = db.Transaction(func(tx *gorm.DB) error {
		// Final gate: the point-form check runs inside the same transaction
		// as the insert, closing the window between "slot looked free" and
		// "slot is reserved"
		if err := CheckAvailability(tx, clock, input.Business, input.Location, input.Staff,
			booking.AppointmentDatetime, totalDuration, ""); err != nil {
			return err
		}

		// Customer resolution shares the transaction so a rejected booking
		// leaves no customer row behind
		customer, err := GetOrCreateCustomer(tx, input.Business.ID, input.CustomerName, input.CustomerEmail,
			input.CustomerPhone, input.PetName, input.PetType)
		if err != nil {
			return err
		}
		booking.CustomerID = customer.ID
		booking.CustomerEmail = customer.Email

		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BookingID = booking.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isLockContention(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	booking.Items = items
	return booking, nil
}

// assertItemTotals panics if the line items do not sum to the booking's
// totals. A mismatch is a programming error, never user input.
func assertItemTotals(booking *models.Booking, items []models.BookingItem) {
	duration := 0
	price := 0.0
	for _, item := range items {
		duration += item.DurationMinutes
		price += item.Price
	}
	if duration != booking.DurationMinutes || price != booking.Price {
		panic(fmt.Sprintf("booking item totals out of sync: items %dmin/%.2f vs booking %dmin/%.2f",
			duration, price, booking.DurationMinutes, booking.Price))
	}
}

// GetBookingByReference fetches a booking by its human-facing code with its
// line items and resources
func GetBookingByReference(db *gorm.DB, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Items").Preload("Location").Preload("StaffMember").Preload("Customer").
		First(&booking, "booking_reference = ?", reference).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking along the lifecycle, rejecting any
// transition the state machine does not allow
func UpdateBookingStatus(db *gorm.DB, reference, status string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(status) {
		return nil, ErrInvalidTransition
	}

	booking, err := GetBookingByReference(db, reference)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := db.Model(booking).Update("status", status).Error; err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}

// CancelBooking cancels a booking, recording who cancelled and why. Only
// permitted while the booking is more than 24 hours out and not terminal.
func CancelBooking(db *gorm.DB, clock Clock, reference, reason, cancelledBy string) (*models.Booking, error) {
	booking, err := GetBookingByReference(db, reference)
	if err != nil {
		return nil, err
	}
	if !booking.IsModifiable(clock.Now()) {
		return nil, ErrBookingNotModifiable
	}

	now := clock.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
		"cancelled_by": cancelledBy,
	}
	if reason != "" {
		updates["cancellation_reason"] = reason
	}

	if err := db.Model(booking).Updates(updates).Error; err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	return booking, nil
}

// RescheduleBooking moves a booking to a new instant in place, keeping its
// reference and line items. The new instant passes the full policy check
// with the booking's own reservation excluded from conflict consideration.
func RescheduleBooking(db *gorm.DB, clock Clock, reference string, newStart time.Time) (*models.Booking, error) {
	booking, err := GetBookingByReference(db, reference)
	if err != nil {
		return nil, err
	}
	if !booking.IsModifiable(clock.Now()) {
		return nil, ErrBookingNotModifiable
	}

	var business models.Business
	if err := db.First(&business, "id = ?", booking.BusinessID).Error; err != nil {
		return nil, err
	}

	var staff *models.StaffMember
	if booking.StaffMemberID != nil {
		staff = booking.StaffMember
	}

	newStart = newStart.UTC()
	newEnd := newStart.Add(time.Duration(booking.DurationMinutes) * time.Minute)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := CheckAvailability(tx, clock, &business, &booking.Location, staff,
			newStart, booking.DurationMinutes, booking.ID); err != nil {
			return err
		}

		return tx.Model(booking).Updates(map[string]interface{}{
			"appointment_datetime": newStart,
			"end_datetime":         newEnd,
		}).Error
	})
	if err != nil {
		if isLockContention(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	booking.AppointmentDatetime = newStart
	booking.EndDatetime = newEnd
	return booking, nil
}
