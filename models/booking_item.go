package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingItem is an immutable snapshot of one service line within a booking.
// The snapshot, not the live service, is authoritative: editing or deleting
// the originating service never changes what was booked.
type BookingItem struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BookingID string `gorm:"type:uuid;index;not null" json:"booking_id"`

	// Originating service, kept for reporting only
	ServiceID *string `gorm:"type:uuid;index" json:"service_id,omitempty"`

	ServiceName     string  `gorm:"size:200;not null" json:"service_name"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`
	DisplayOrder    int     `gorm:"default:0" json:"display_order"`
}

// BeforeCreate hook to generate UUID
func (i *BookingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BookingItem model
func (BookingItem) TableName() string {
	return "booking_items"
}
