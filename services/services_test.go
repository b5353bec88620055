package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
	"github.com/cafereservas/booking-app/utils"
)

// Monday 2026-03-02, noon. All service tests pin the clock here so past-date
// and retention rules are deterministic.
var testNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// newTestDB opens a named in-memory SQLite database. The name keeps the
// database shared across pooled connections but isolated per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.Booking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newBookingServiceForTest(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedNow
	return svc, db
}

func seedTable(t *testing.T, db *gorm.DB, seats int) models.Table {
	t.Helper()
	table := models.Table{Seats: seats}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

// seedBooking inserts a booking directly, bypassing the service, for tests
// that need rows the service itself would refuse (past or expired dates).
func seedBooking(t *testing.T, db *gorm.DB, tableID uint, date time.Time, startHour, startMin int) models.Booking {
	t.Helper()
	startsAt := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMin, 0, 0, time.UTC)
	b := models.Booking{
		TableID:  tableID,
		Name:     "Seed Customer",
		Phone:    "351900000000",
		Date:     DateOf(date),
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(ReservationDuration),
		Guests:   2,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return b
}
