package services

import (
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixedClock pins "now" so notice and advance-window checks are deterministic
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(
		&models.Business{},
		&models.Location{},
		&models.StaffMember{},
		&models.Service{},
		&models.Customer{},
		&models.AvailabilityBlock{},
		&models.Booking{},
		&models.BookingItem{},
	)
	return db
}

func createTestBusiness(db *gorm.DB) (*models.Business, *models.Location) {
	business := &models.Business{
		Name:         "Berties Grooming",
		Timezone:     "UTC",
		ContactEmail: "hello@berties.test",
		IsActive:     true,
	}
	db.Create(business)

	location := &models.Location{
		BusinessID:            business.ID,
		Name:                  "Downtown",
		IsActive:              true,
		AcceptsOnlineBookings: true,
		AutoConfirmBookings:   true,
		BookingBufferMinutes:  15,
		MinNoticeHours:        24,
		AdvanceBookingDays:    30,
	}
	db.Create(location)

	return business, location
}

func weeklyBlock(businessID string, day int, start, end, blockType string) *models.AvailabilityBlock {
	return &models.AvailabilityBlock{
		BusinessID:   businessID,
		DayOfWeek:    &day,
		StartTime:    start,
		EndTime:      end,
		BlockType:    blockType,
		RepeatWeekly: true,
	}
}

func dateBlock(businessID string, date time.Time, start, end, blockType string) *models.AvailabilityBlock {
	return &models.AvailabilityBlock{
		BusinessID:   businessID,
		SpecificDate: &date,
		StartTime:    start,
		EndTime:      end,
		BlockType:    blockType,
	}
}

// nextWeekday returns the next date (strictly after from) falling on the
// given weekday, at midnight UTC
func nextWeekday(from time.Time, weekday time.Weekday) time.Time {
	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func strPtr(s string) *string {
	return &s
}

func createTestBooking(db *gorm.DB, business *models.Business, location *models.Location, start time.Time, durationMinutes int, status string) *models.Booking {
	customer := &models.Customer{
		BusinessID: business.ID,
		Name:       "Jordan Avery",
		Email:      "jordan@example.test",
	}
	db.Create(customer)

	booking := &models.Booking{
		BusinessID:          business.ID,
		LocationID:          location.ID,
		CustomerID:          customer.ID,
		CustomerName:        customer.Name,
		CustomerEmail:       customer.Email,
		PetName:             "Bertie",
		PetType:             "dog",
		AppointmentDatetime: start,
		DurationMinutes:     durationMinutes,
		Status:              status,
	}
	db.Create(booking)
	return booking
}
