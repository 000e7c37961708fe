package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability block types
const (
	BlockTypeAvailable = "available"
	BlockTypeBreak     = "break"
	BlockTypeBlocked   = "blocked"
	BlockTypeHoliday   = "holiday"
)

// AvailabilityBlock is a rule describing when a resource is open or closed.
// A block either recurs weekly (DayOfWeek set) or applies to a single
// calendar date (SpecificDate set). A nil LocationID applies the rule to
// every location of the business; a nil StaffMemberID applies it to all staff.
type AvailabilityBlock struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID    string  `gorm:"type:uuid;index;not null" json:"business_id"`
	LocationID    *string `gorm:"type:uuid;index" json:"location_id,omitempty"`
	StaffMemberID *string `gorm:"type:uuid;index" json:"staff_member_id,omitempty"`

	DayOfWeek    *int       `gorm:"index" json:"day_of_week,omitempty"` // 0=Sunday...6=Saturday
	StartTime    string     `gorm:"size:5;not null" json:"start_time"`  // "09:00"
	EndTime      string     `gorm:"size:5;not null" json:"end_time"`    // "17:00", half-open [start, end)
	SpecificDate *time.Time `gorm:"type:date;index" json:"specific_date,omitempty"`
	BlockType    string     `gorm:"size:20;not null;default:'available';index" json:"block_type"`
	RepeatWeekly bool       `gorm:"default:true" json:"repeat_weekly"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *AvailabilityBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for AvailabilityBlock model
func (AvailabilityBlock) TableName() string {
	return "availability_blocks"
}

// IsValidBlockType checks if the block type is valid
func IsValidBlockType(blockType string) bool {
	switch blockType {
	case BlockTypeAvailable, BlockTypeBreak, BlockTypeBlocked, BlockTypeHoliday:
		return true
	}
	return false
}

// IsAvailableType reports whether the block opens time rather than removing it
func (b *AvailabilityBlock) IsAvailableType() bool {
	return b.BlockType == BlockTypeAvailable
}

// IsBlockingType reports whether the block removes time from an open window
func (b *AvailabilityBlock) IsBlockingType() bool {
	return b.BlockType == BlockTypeBreak || b.BlockType == BlockTypeBlocked || b.BlockType == BlockTypeHoliday
}

// IsDateSpecific reports whether the block applies to one calendar date only
func (b *AvailabilityBlock) IsDateSpecific() bool {
	return b.SpecificDate != nil
}

// ActiveOn reports whether this block applies to the given calendar date.
// A specific-date block matches only its date; a recurring block matches
// every date falling on its weekday.
func (b *AvailabilityBlock) ActiveOn(date time.Time) bool {
	if b.SpecificDate != nil {
		sy, sm, sd := b.SpecificDate.Date()
		dy, dm, dd := date.Date()
		return sy == dy && sm == dm && sd == dd
	}
	if b.DayOfWeek != nil {
		return *b.DayOfWeek == int(date.Weekday())
	}
	return false
}

// AppliesToStaff reports whether this block constrains the given staff scope.
// A staff-agnostic block applies to every staff member; a staff-scoped block
// applies only when that staff member is the one being queried.
func (b *AvailabilityBlock) AppliesToStaff(staffMemberID *string) bool {
	if b.StaffMemberID == nil {
		return true
	}
	return staffMemberID != nil && *b.StaffMemberID == *staffMemberID
}
