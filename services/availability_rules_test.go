package services

import (
	"testing"
	"time"

	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/stretchr/testify/assert"
)

func TestBlocksForDateWeeklyMatch(t *testing.T) {
	db := setupTestDB()
	business, location := createTestBusiness(db)

	db.Create(weeklyBlock(business.ID, 1, "09:00", "17:00", models.BlockTypeAvailable))
	db.Create(weeklyBlock(business.ID, 2, "10:00", "16:00", models.BlockTypeAvailable))

	scope := ResourceScope{BusinessID: business.ID, LocationID: location.ID}
	monday := nextWeekday(time.Now(), time.Monday)

	available, blocking, err := BlocksForDate(db, scope, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Empty(t, blocking)
	assert.Equal(t, "09:00", available[0].StartTime)

	// A date falling on Wednesday matches neither rule
	wednesday := nextWeekday(time.Now(), time.Wednesday)
	available, blocking, err = BlocksForDate(db, scope, wednesday)
	assert.NoError(t, err)
	assert.Empty(t, available)
	assert.Empty(t, blocking)
}

func TestBlocksForDateSpecificDatePrecedence(t *testing.T) {
	db := setupTestDB()
	business, location := createTestBusiness(db)

	monday := nextWeekday(time.Now(), time.Monday)

	// Weekly Monday hours plus a one-off shorter opening for one Monday
	db.Create(weeklyBlock(business.ID, 1, "09:00", "17:00", models.BlockTypeAvailable))
	db.Create(dateBlock(business.ID, monday, "10:00", "12:00", models.BlockTypeAvailable))

	scope := ResourceScope{BusinessID: business.ID, LocationID: location.ID}

	// On the specific date only the one-off opening applies
	available, _, err := BlocksForDate(db, scope, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "10:00", available[0].StartTime)

	// The following Monday falls back to the weekly rule
	available, _, err = BlocksForDate(db, scope, monday.AddDate(0, 0, 7))
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "09:00", available[0].StartTime)
}

func TestBlocksForDateHolidayIsBlocking(t *testing.T) {
	db := setupTestDB()
	business, location := createTestBusiness(db)

	monday := nextWeekday(time.Now(), time.Monday)

	db.Create(weeklyBlock(business.ID, 1, "09:00", "17:00", models.BlockTypeAvailable))
	db.Create(dateBlock(business.ID, monday, "00:00", "23:59", models.BlockTypeHoliday))

	scope := ResourceScope{BusinessID: business.ID, LocationID: location.ID}

	// The holiday lands in the blocking set; the weekly opening still
	// resolves and is cancelled out at slot-generation time
	available, blocking, err := BlocksForDate(db, scope, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Len(t, blocking, 1)
	assert.Equal(t, models.BlockTypeHoliday, blocking[0].BlockType)
}

func TestBlocksForDateScopeMatching(t *testing.T) {
	db := setupTestDB()
	business, location := createTestBusiness(db)

	other := &models.Location{
		BusinessID:            business.ID,
		Name:                  "Uptown",
		IsActive:              true,
		AcceptsOnlineBookings: true,
	}
	db.Create(other)

	staff := &models.StaffMember{
		BusinessID:      business.ID,
		LocationID:      location.ID,
		Name:            "Sam",
		IsActive:        true,
		AcceptsBookings: true,
	}
	db.Create(staff)

	// Business-wide block, a block pinned to the other location, and a
	// staff-scoped block
	db.Create(weeklyBlock(business.ID, 1, "09:00", "17:00", models.BlockTypeAvailable))

	pinned := weeklyBlock(business.ID, 1, "08:00", "18:00", models.BlockTypeAvailable)
	pinned.LocationID = &other.ID
	db.Create(pinned)

	narrowed := weeklyBlock(business.ID, 1, "09:00", "12:00", models.BlockTypeAvailable)
	narrowed.StaffMemberID = &staff.ID
	db.Create(narrowed)

	monday := nextWeekday(time.Now(), time.Monday)

	// Location-level query: business-wide block only; staff-scoped rules
	// never narrow the location's own hours
	available, _, err := BlocksForDate(db, ResourceScope{BusinessID: business.ID, LocationID: location.ID}, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "09:00", available[0].StartTime)
	assert.Equal(t, "17:00", available[0].EndTime)

	// Staff-scoped query: the staff member's own opening replaces the
	// business-wide schedule
	available, _, err = BlocksForDate(db, ResourceScope{BusinessID: business.ID, LocationID: location.ID, StaffMemberID: &staff.ID}, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "12:00", available[0].EndTime)

	// The other location sees its pinned block plus the business-wide one
	available, _, err = BlocksForDate(db, ResourceScope{BusinessID: business.ID, LocationID: other.ID}, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestBlocksForDateStaffOpeningsNarrow(t *testing.T) {
	db := setupTestDB()
	business, location := createTestBusiness(db)

	staff := &models.StaffMember{
		BusinessID:      business.ID,
		LocationID:      location.ID,
		Name:            "Sam",
		IsActive:        true,
		AcceptsBookings: true,
	}
	db.Create(staff)

	db.Create(weeklyBlock(business.ID, 1, "09:00", "17:00", models.BlockTypeAvailable))

	shift := weeklyBlock(business.ID, 1, "09:00", "12:00", models.BlockTypeAvailable)
	shift.StaffMemberID = &staff.ID
	db.Create(shift)

	// A staff-agnostic break still removes time from the staff shift
	db.Create(weeklyBlock(business.ID, 1, "10:00", "10:30", models.BlockTypeBreak))

	monday := nextWeekday(time.Now(), time.Monday)

	available, blocking, err := BlocksForDate(db, ResourceScope{BusinessID: business.ID, LocationID: location.ID, StaffMemberID: &staff.ID}, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "09:00", available[0].StartTime)
	assert.Equal(t, "12:00", available[0].EndTime)
	assert.Len(t, blocking, 1)

	// Without a staff id the location keeps its full hours
	available, _, err = BlocksForDate(db, ResourceScope{BusinessID: business.ID, LocationID: location.ID}, monday)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "17:00", available[0].EndTime)
}

func TestCheckBlockOverlap(t *testing.T) {
	db := setupTestDB()
	business, _ := createTestBusiness(db)

	existing := weeklyBlock(business.ID, 1, "09:00", "12:00", models.BlockTypeAvailable)
	db.Create(existing)

	// Overlap inside
	overlaps, err := CheckBlockOverlap(db, weeklyBlock(business.ID, 1, "10:00", "11:00", models.BlockTypeAvailable), "")
	assert.NoError(t, err)
	assert.True(t, overlaps)

	// Adjacent, no overlap
	overlaps, err = CheckBlockOverlap(db, weeklyBlock(business.ID, 1, "12:00", "14:00", models.BlockTypeAvailable), "")
	assert.NoError(t, err)
	assert.False(t, overlaps)

	// Different weekday
	overlaps, err = CheckBlockOverlap(db, weeklyBlock(business.ID, 2, "10:00", "11:00", models.BlockTypeAvailable), "")
	assert.NoError(t, err)
	assert.False(t, overlaps)

	// Excluding the existing block itself
	overlaps, err = CheckBlockOverlap(db, weeklyBlock(business.ID, 1, "09:00", "12:00", models.BlockTypeAvailable), existing.ID)
	assert.NoError(t, err)
	assert.False(t, overlaps)
}
