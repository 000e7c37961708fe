package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingDSN(t *testing.T) {
	dsn := bookingDSN("db/heybertie.db")
	assert.Equal(t, "db/heybertie.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", dsn)
}

func TestInitialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.db")

	assert.NoError(t, Initialize(path, "test"))
	assert.NotNil(t, DB)

	type sampleRow struct {
		ID   uint `gorm:"primarykey"`
		Name string
	}
	assert.NoError(t, AutoMigrate(&sampleRow{}))
	assert.NoError(t, DB.Create(&sampleRow{Name: "ok"}).Error)

	assert.NoError(t, Close())
	DB = nil
}
