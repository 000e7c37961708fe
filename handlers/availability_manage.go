package handlers

import (
	"net/http"
	"strings"

	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/ClickswiftHQ/HeyBertie-sub000/services"
	"github.com/labstack/echo/v4"
)

// Management endpoints for availability rules. Blocks are created and
// deleted here by business tooling and are read-only to the engine itself.

// GetAvailabilityBlocksHandler lists a business's availability rules (JSON)
func GetAvailabilityBlocksHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	var locationID *string
	if id := c.QueryParam("location_id"); id != "" {
		location, err := getLocation(business.ID, id)
		if err != nil {
			return err
		}
		locationID = &location.ID
	}

	blocks, err := services.GetAvailabilityBlocks(db.DB, business.ID, locationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load availability blocks")
	}

	return c.JSON(http.StatusOK, blocks)
}

// CreateAvailabilityBlockHandler creates an availability rule (JSON)
func CreateAvailabilityBlockHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	var req struct {
		LocationID    *string `json:"location_id"`
		StaffMemberID *string `json:"staff_member_id"`
		DayOfWeek     *int    `json:"day_of_week"`
		SpecificDate  *string `json:"specific_date"` // YYYY-MM-DD
		StartTime     string  `json:"start_time"`
		EndTime       string  `json:"end_time"`
		BlockType     string  `json:"block_type"`
		Notes         *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	startTime := strings.TrimSpace(req.StartTime)
	endTime := strings.TrimSpace(req.EndTime)
	if startTime == "" || endTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Start and end time are required")
	}
	if _, err := services.MinutesFromMidnight(startTime); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start time")
	}
	if _, err := services.MinutesFromMidnight(endTime); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end time")
	}
	if startTime >= endTime {
		return echo.NewHTTPError(http.StatusBadRequest, "End time must be after start time")
	}

	blockType := req.BlockType
	if blockType == "" {
		blockType = models.BlockTypeAvailable
	}
	if !models.IsValidBlockType(blockType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid block type")
	}

	// Exactly one of day_of_week / specific_date drives applicability
	if (req.DayOfWeek == nil) == (req.SpecificDate == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "Provide either day_of_week or specific_date")
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid day of week")
	}

	block := &models.AvailabilityBlock{
		BusinessID:    business.ID,
		StaffMemberID: req.StaffMemberID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     startTime,
		EndTime:       endTime,
		BlockType:     blockType,
		RepeatWeekly:  req.SpecificDate == nil,
		Notes:         req.Notes,
	}

	if req.LocationID != nil {
		location, err := getLocation(business.ID, *req.LocationID)
		if err != nil {
			return err
		}
		block.LocationID = &location.ID
	}

	if req.SpecificDate != nil {
		date, err := services.ParseDate(*req.SpecificDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid specific date")
		}
		block.SpecificDate = &date
	}

	// Overlapping available blocks are legal but usually a mistake; surface
	// a warning without rejecting
	overlaps, err := services.CheckBlockOverlap(db.DB, block, "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check for overlaps")
	}

	if err := services.CreateAvailabilityBlock(db.DB, block); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create block")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"block":    block,
		"overlaps": overlaps,
	})
}

// DeleteAvailabilityBlockHandler removes an availability rule
func DeleteAvailabilityBlockHandler(c echo.Context) error {
	business, err := getBusinessBySlug(c.Param("slug"))
	if err != nil {
		return err
	}

	block, err := services.GetAvailabilityBlockByID(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Block not found")
	}
	if block.BusinessID != business.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	if err := services.DeleteAvailabilityBlock(db.DB, block.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete block")
	}

	return c.NoContent(http.StatusNoContent)
}
