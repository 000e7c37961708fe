package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/services"
	"github.com/labstack/echo/v4"
)

const maxDaysAhead = 90

// GetAvailableDatesHandler returns, for the next N days, whether each date
// has at least one open slot (JSON)
func GetAvailableDatesHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	location, err := getLocation(business.ID, c.QueryParam("location_id"))
	if err != nil {
		return err
	}

	staff, err := getStaffMember(location.ID, c.QueryParam("staff_id"))
	if err != nil {
		return err
	}

	durationParam, _ := strconv.Atoi(c.QueryParam("duration"))
	duration, err := resolveDuration(business.ID, c.QueryParam("service_ids"), durationParam)
	if err != nil {
		return err
	}

	daysAhead, _ := strconv.Atoi(c.QueryParam("days_ahead"))
	if daysAhead <= 0 {
		daysAhead = location.AdvanceBookingDays
	}
	if daysAhead > maxDaysAhead {
		daysAhead = maxDaysAhead
	}

	var staffID *string
	if staff != nil {
		staffID = &staff.ID
	}

	tz := services.LocationTimezone(business)
	dates, err := services.ListAvailableDates(db.DB, Clock, location, staffID, tz, duration, daysAhead)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load availability")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"dates":                dates,
		"timezone":             business.Timezone,
		"advance_booking_days": location.AdvanceBookingDays,
	})
}

// GetAvailableSlotsHandler returns the open slots for a date (JSON)
func GetAvailableSlotsHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	location, err := getLocation(business.ID, c.QueryParam("location_id"))
	if err != nil {
		return err
	}

	staff, err := getStaffMember(location.ID, c.QueryParam("staff_id"))
	if err != nil {
		return err
	}

	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := services.ParseDate(dateStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	durationParam, _ := strconv.Atoi(c.QueryParam("duration"))
	duration, err := resolveDuration(business.ID, c.QueryParam("service_ids"), durationParam)
	if err != nil {
		return err
	}

	var staffID *string
	if staff != nil {
		staffID = &staff.ID
	}

	tz := services.LocationTimezone(business)
	localDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tz)

	slots, err := services.ListSlotsForDate(db.DB, location, staffID, tz, localDate, duration)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load slots")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"slots":                slots,
		"date":                 dateStr,
		"timezone":             business.Timezone,
		"advance_booking_days": location.AdvanceBookingDays,
	})
}
