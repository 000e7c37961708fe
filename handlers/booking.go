package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/config"
	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/ClickswiftHQ/HeyBertie-sub000/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// bookingErrorResponse maps domain errors to HTTP semantics: a slot conflict
// (including losing the write-time race) is 409 so the client can retry with
// a fresh availability query; other policy rejections are 422; an unknown
// resource is 404.
func bookingErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrSlotNotAvailable):
		return c.JSON(http.StatusConflict, map[string]string{"reason": err.Error()})
	case services.IsPolicyRejection(err):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"reason": err.Error()})
	case errors.Is(err, services.ErrBookingNotModifiable), errors.Is(err, services.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"reason": err.Error()})
	case errors.Is(err, services.ErrNoServicesSelected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Booking operation failed")
	}
}

// CreateBookingHandler places a booking for a business (JSON)
func CreateBookingHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	var req struct {
		LocationID          string   `json:"location_id"`
		StaffMemberID       string   `json:"staff_member_id"`
		ServiceIDs          []string `json:"service_ids"`
		AppointmentDatetime string   `json:"appointment_datetime"` // RFC3339
		CustomerName        string   `json:"customer_name"`
		CustomerEmail       string   `json:"customer_email"`
		CustomerPhone       string   `json:"customer_phone"`
		PetName             string   `json:"pet_name"`
		PetType             string   `json:"pet_type"`
		Notes               *string  `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.AppointmentDatetime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	start, err := time.Parse(time.RFC3339, req.AppointmentDatetime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment_datetime format")
	}

	location, err := getLocation(business.ID, req.LocationID)
	if err != nil {
		return err
	}

	staff, err := getStaffMember(location.ID, req.StaffMemberID)
	if err != nil {
		return err
	}

	var phone *string
	if req.CustomerPhone != "" {
		phone = &req.CustomerPhone
	}

	booking, err := services.CreateBooking(db.DB, Clock, services.CreateBookingInput{
		Business:      business,
		Location:      location,
		Staff:         staff,
		ServiceIDs:    req.ServiceIDs,
		Start:         start,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: phone,
		PetName:       req.PetName,
		PetType:       req.PetType,
		Notes:         req.Notes,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		services.NotifyBookingCreated(cfg, booking, business)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"booking_reference": booking.BookingReference,
		"status":            booking.Status,
		"booking":           booking,
	})
}

// GetBookingHandler returns a booking by reference (JSON)
func GetBookingHandler(c echo.Context) error {
	booking, err := services.GetBookingByReference(db.DB, c.Param("reference"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}
	return c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a booking by reference (JSON)
func CancelBookingHandler(c echo.Context) error {
	var req struct {
		Reason      string `json:"reason"`
		CancelledBy string `json:"cancelled_by"`
	}
	c.Bind(&req)

	if req.CancelledBy == "" {
		req.CancelledBy = "customer"
	}

	booking, err := services.CancelBooking(db.DB, Clock, c.Param("reference"), req.Reason, req.CancelledBy)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		var business models.Business
		if db.DB.First(&business, "id = ?", booking.BusinessID).Error == nil {
			services.NotifyBookingCancelled(cfg, booking, &business)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"booking_reference": booking.BookingReference,
		"status":            booking.Status,
	})
}

// RescheduleBookingHandler moves a booking to a new time (JSON)
func RescheduleBookingHandler(c echo.Context) error {
	var req struct {
		AppointmentDatetime string `json:"appointment_datetime"` // RFC3339
	}
	if err := c.Bind(&req); err != nil || req.AppointmentDatetime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "appointment_datetime is required")
	}

	newStart, err := time.Parse(time.RFC3339, req.AppointmentDatetime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment_datetime format")
	}

	booking, err := services.RescheduleBooking(db.DB, Clock, c.Param("reference"), newStart)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		var business models.Business
		if db.DB.First(&business, "id = ?", booking.BusinessID).Error == nil {
			services.NotifyBookingRescheduled(cfg, booking, &business)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"booking_reference":    booking.BookingReference,
		"status":               booking.Status,
		"appointment_datetime": booking.AppointmentDatetime,
	})
}

// UpdateBookingStatusHandler moves a booking along its lifecycle (JSON).
// Used by business tooling to confirm, complete, or mark no-shows.
func UpdateBookingStatusHandler(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	booking, err := services.UpdateBookingStatus(db.DB, c.Param("reference"), req.Status)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"booking_reference": booking.BookingReference,
		"status":            booking.Status,
	})
}
