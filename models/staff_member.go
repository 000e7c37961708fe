package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffMember represents a bookable person at a location (groomer, walker, vet tech)
type StaffMember struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID string   `gorm:"type:uuid;index;not null" json:"business_id"`
	LocationID string   `gorm:"type:uuid;index;not null" json:"location_id"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	Name  string `gorm:"size:200;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Title string `gorm:"size:100" json:"title"` // "Senior Groomer", "Dog Walker"

	IsActive        bool `gorm:"default:true;index" json:"is_active"`
	AcceptsBookings bool `gorm:"default:true" json:"accepts_bookings"`
}

// BeforeCreate hook to generate UUID
func (s *StaffMember) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for StaffMember model
func (StaffMember) TableName() string {
	return "staff_members"
}

// IsBookable reports whether the staff member can take new bookings
func (s *StaffMember) IsBookable() bool {
	return s.IsActive && s.AcceptsBookings
}
