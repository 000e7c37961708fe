package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/config"
	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests from each other
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Business{},
		&models.Location{},
		&models.StaffMember{},
		&models.Service{},
		&models.Customer{},
		&models.AvailabilityBlock{},
		&models.Booking{},
		&models.BookingItem{},
	)
	assert.NoError(t, err)

	// Handlers read the global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// createBookableBusiness seeds a business open every day 09:00-17:00 with one
// location and one 60 minute service, and pins the handler clock six days
// before the slot the tests book against
func createBookableBusiness(t *testing.T, database *gorm.DB) (*models.Business, *models.Location, *models.Service, time.Time) {
	t.Helper()

	business := &models.Business{
		Name:         "Berties Grooming",
		Timezone:     "UTC",
		ContactEmail: "hello@berties.test",
		IsActive:     true,
	}
	database.Create(business)

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
	database.Create(location)

	for day := 0; day < 7; day++ {
		weekday := day
		database.Create(&models.AvailabilityBlock{
			BusinessID:   business.ID,
			DayOfWeek:    &weekday,
			StartTime:    "09:00",
			EndTime:      "17:00",
			BlockType:    models.BlockTypeAvailable,
			RepeatWeekly: true,
		})
	}

	service := &models.Service{
		BusinessID:      business.ID,
		Name:            "Full Groom",
		DurationMinutes: 60,
		Price:           45.00,
		IsActive:        true,
	}
	database.Create(service)

	Clock = fixedClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}

	return business, location, service, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
}
