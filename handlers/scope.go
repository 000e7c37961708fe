package handlers

import (
	"net/http"
	"strings"

	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/ClickswiftHQ/HeyBertie-sub000/services"
	"github.com/labstack/echo/v4"
)

// Clock used by time-dependent handlers; swapped for a fixed clock in tests
var Clock services.Clock = services.SystemClock{}

// getBusinessBySlug resolves the business a public request is scoped to
func getBusinessBySlug(slug string) (*models.Business, error) {
	var business models.Business
	if err := db.DB.Where("slug = ?", slug).First(&business).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Business not found")
	}
	return &business, nil
}

// getLocation resolves a location within a business
func getLocation(businessID, locationID string) (*models.Location, error) {
	if locationID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "location_id is required")
	}
	var location models.Location
	if err := db.DB.First(&location, "id = ? AND business_id = ?", locationID, businessID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Location not found")
	}
	return &location, nil
}

// getStaffMember resolves an optional staff member within a location.
// Returns nil when no staff id was given.
func getStaffMember(locationID, staffID string) (*models.StaffMember, error) {
	if staffID == "" {
		return nil, nil
	}
	var staff models.StaffMember
	if err := db.DB.First(&staff, "id = ? AND location_id = ?", staffID, locationID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Staff member not found")
	}
	return &staff, nil
}

// resolveDuration determines the slot duration for an availability query:
// the summed duration of the requested services, an explicit duration
// parameter, or the 60-minute default.
func resolveDuration(businessID, serviceIDsParam string, durationParam int) (int, error) {
	if serviceIDsParam != "" {
		ids := strings.Split(serviceIDsParam, ",")
		var selected []models.Service
		if err := db.DB.Where("business_id = ? AND id IN ? AND is_active = ?", businessID, ids, true).
			Find(&selected).Error; err != nil {
			return 0, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load services")
		}
		if len(selected) != len(ids) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "Service not found")
		}
		total := 0
		for _, service := range selected {
			total += service.DurationMinutes
		}
		return total, nil
	}
	if durationParam > 0 {
		return durationParam, nil
	}
	return 60, nil
}
