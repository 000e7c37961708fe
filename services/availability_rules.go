package services

import (
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/gorm"
)

// ResourceScope identifies what availability and conflict checks are
// evaluated against: a location, optionally narrowed to one staff member.
type ResourceScope struct {
	BusinessID    string
	LocationID    string
	StaffMemberID *string
}

// BlocksForDate resolves the availability rules applying to a scope on a
// calendar date and partitions them into available and blocking sets.
//
// Scope matching: location-agnostic blocks (nil location) apply to every
// location of the business; staff-agnostic blocks apply to every staff
// member. When the scope names no staff member, staff-scoped blocks are
// ignored so a location-level query sees the location's full hours.
//
// Precedence: the more specific available blocks replace the broader
// ones rather than widening them. Staff-scoped openings replace the
// staff-agnostic schedule for that staff member, and specific-date
// openings replace the weekly schedule for that date. Blocking blocks
// always accumulate - a specific-date holiday removes time from a
// recurring open window rather than replacing it.
func BlocksForDate(db *gorm.DB, scope ResourceScope, date time.Time) (available, blocking []models.AvailabilityBlock, err error) {
	query := db.Where("business_id = ?", scope.BusinessID).
		Where("location_id IS NULL OR location_id = ?", scope.LocationID)

	if scope.StaffMemberID != nil {
		query = query.Where("staff_member_id IS NULL OR staff_member_id = ?", *scope.StaffMemberID)
	} else {
		query = query.Where("staff_member_id IS NULL")
	}

	var blocks []models.AvailabilityBlock
	if err := query.Order("start_time").Find(&blocks).Error; err != nil {
		return nil, nil, err
	}

	var openings []models.AvailabilityBlock
	for _, block := range blocks {
		if !block.ActiveOn(date) {
			continue
		}
		if block.IsBlockingType() {
			blocking = append(blocking, block)
			continue
		}
		openings = append(openings, block)
	}

	// A staff member with their own openings works those hours, not the
	// location's
	if scope.StaffMemberID != nil {
		var staffScoped []models.AvailabilityBlock
		for _, block := range openings {
			if block.StaffMemberID != nil {
				staffScoped = append(staffScoped, block)
			}
		}
		if len(staffScoped) > 0 {
			openings = staffScoped
		}
	}

	// Specific-date openings take precedence over the weekly schedule
	var recurringAvailable, dateAvailable []models.AvailabilityBlock
	for _, block := range openings {
		if block.IsDateSpecific() {
			dateAvailable = append(dateAvailable, block)
		} else {
			recurringAvailable = append(recurringAvailable, block)
		}
	}
	available = recurringAvailable
	if len(dateAvailable) > 0 {
		available = dateAvailable
	}

	return available, blocking, nil
}

// GetAvailabilityBlocks fetches all blocks for a business, optionally
// narrowed to one location, ordered for display
func GetAvailabilityBlocks(db *gorm.DB, businessID string, locationID *string) ([]models.AvailabilityBlock, error) {
	query := db.Where("business_id = ?", businessID)
	if locationID != nil {
		query = query.Where("location_id IS NULL OR location_id = ?", *locationID)
	}

	var blocks []models.AvailabilityBlock
	err := query.Order("day_of_week, specific_date, start_time").Find(&blocks).Error
	return blocks, err
}

// GetAvailabilityBlockByID fetches a single block
func GetAvailabilityBlockByID(db *gorm.DB, id string) (*models.AvailabilityBlock, error) {
	var block models.AvailabilityBlock
	err := db.First(&block, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// CreateAvailabilityBlock adds a new availability rule
func CreateAvailabilityBlock(db *gorm.DB, block *models.AvailabilityBlock) error {
	return db.Create(block).Error
}

// DeleteAvailabilityBlock removes an availability rule
func DeleteAvailabilityBlock(db *gorm.DB, id string) error {
	return db.Delete(&models.AvailabilityBlock{}, "id = ?", id).Error
}

// CheckBlockOverlap checks if a new available block overlaps an existing one
// of the same type and scope on the same weekday. Used by management tooling
// to warn before saving; overlapping blocks are legal and deduplicated at
// slot-generation time.
func CheckBlockOverlap(db *gorm.DB, block *models.AvailabilityBlock, excludeID string) (bool, error) {
	query := db.Model(&models.AvailabilityBlock{}).
		Where("business_id = ? AND block_type = ?", block.BusinessID, block.BlockType).
		Where("start_time < ? AND end_time > ?", block.EndTime, block.StartTime)

	if block.DayOfWeek != nil {
		query = query.Where("day_of_week = ?", *block.DayOfWeek)
	}
	if block.SpecificDate != nil {
		query = query.Where("specific_date = ?", *block.SpecificDate)
	}
	if block.LocationID != nil {
		query = query.Where("location_id IS NULL OR location_id = ?", *block.LocationID)
	}
	if block.StaffMemberID != nil {
		query = query.Where("staff_member_id IS NULL OR staff_member_id = ?", *block.StaffMemberID)
	}
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
