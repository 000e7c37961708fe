package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location represents a bookable place of business (a salon, clinic, etc.)
type Location struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID string   `gorm:"type:uuid;index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`

	Name    string `gorm:"size:200;not null" json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `gorm:"size:20" json:"phone"`

	IsActive              bool `gorm:"default:true;index" json:"is_active"`
	AcceptsOnlineBookings bool `gorm:"default:true" json:"accepts_online_bookings"`
	AutoConfirmBookings   bool `gorm:"default:true" json:"auto_confirm_bookings"` // false = new bookings start pending

	// Booking policy
	BookingBufferMinutes int `gorm:"not null;default:15" json:"booking_buffer_minutes"` // Idle time required after each booking
	MinNoticeHours       int `gorm:"not null;default:24" json:"min_notice_hours"`
	AdvanceBookingDays   int `gorm:"not null;default:30" json:"advance_booking_days"`

	// Relationships
	StaffMembers []StaffMember `gorm:"foreignKey:LocationID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}

// IsBookable reports whether the location can take new online bookings
func (l *Location) IsBookable() bool {
	return l.IsActive && l.AcceptsOnlineBookings
}
