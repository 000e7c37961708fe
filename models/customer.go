package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a pet owner who books with a business.
// A customer is identified by email within a business.
type Customer struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID string `gorm:"type:uuid;not null;index:idx_customers_business_email,unique" json:"business_id"`
	Email      string `gorm:"size:255;not null;index:idx_customers_business_email,unique" json:"email"`

	Name  string  `gorm:"size:200;not null" json:"name"`
	Phone *string `gorm:"size:20" json:"phone,omitempty"`

	// Pet details captured at signup; per-visit details live on the booking
	PetName  string  `gorm:"size:100" json:"pet_name"`
	PetType  string  `gorm:"size:50" json:"pet_type"` // "dog", "cat", ...
	PetNotes *string `gorm:"type:text" json:"pet_notes,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}
