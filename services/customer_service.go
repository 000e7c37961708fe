package services

import (
	"errors"
	"strings"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/gorm"
)

// GetOrCreateCustomer resolves a customer identity for a business by email,
// creating one if none exists. The lookup is idempotent: booking twice with
// the same email attaches both bookings to one customer record. Contact and
// pet details are refreshed from the latest booking.
func GetOrCreateCustomer(db *gorm.DB, businessID, name, email string, phone *string, petName, petType string) (*models.Customer, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var customer models.Customer
	err := db.Where("business_id = ? AND email = ?", businessID, normalized).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			BusinessID: businessID,
			Email:      normalized,
			Name:       name,
			Phone:      phone,
			PetName:    petName,
			PetType:    petType,
		}
		if err := db.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": name}
	if phone != nil {
		updates["phone"] = *phone
	}
	if petName != "" {
		updates["pet_name"] = petName
	}
	if petType != "" {
		updates["pet_type"] = petType
	}
	if err := db.Model(&customer).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
