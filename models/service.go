package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service represents a bookable service offered by a business
type Service struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID string `gorm:"type:uuid;index;not null" json:"business_id"`

	Name            string  `gorm:"size:200;not null" json:"name"` // "Full Groom", "Nail Trim"
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int     `gorm:"not null;default:60" json:"duration_minutes"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	IsActive        bool    `gorm:"default:true;index" json:"is_active"`
	DisplayOrder    int     `gorm:"default:0" json:"display_order"`
}

// BeforeCreate hook to generate UUID
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}
