package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
)

func TestPurgeExpiredBoundary(t *testing.T) {
	db := newTestDB(t)
	table := seedTable(t, db, 2)

	today := DateOf(testNow)
	kept := seedBooking(t, db, table.ID, today.AddDate(0, 0, -BookingRetentionDays+1), 19, 0)
	boundary := seedBooking(t, db, table.ID, today.AddDate(0, 0, -BookingRetentionDays), 19, 0)
	old := seedBooking(t, db, table.ID, today.AddDate(0, 0, -BookingRetentionDays-1), 19, 0)

	purged, err := PurgeExpired(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged, "16 and 17 day old bookings expire, 15 day old stays")

	var remaining []models.Booking
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	assert.ErrorIs(t, db.First(&models.Booking{}, boundary.ID).Error, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, db.First(&models.Booking{}, old.ID).Error, gorm.ErrRecordNotFound)
}

func TestPurgeExpiredIdempotent(t *testing.T) {
	db := newTestDB(t)
	table := seedTable(t, db, 2)
	seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, -20), 19, 0)

	purged, err := PurgeExpired(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	purged, err = PurgeExpired(db, testNow)
	require.NoError(t, err)
	assert.Zero(t, purged, "second run has nothing left to delete")
}

func TestPurgeExpiredLeavesFutureBookings(t *testing.T) {
	db := newTestDB(t)
	table := seedTable(t, db, 2)
	seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, 4), 19, 0)
	seedBooking(t, db, table.ID, DateOf(testNow), 19, 0)

	purged, err := PurgeExpired(db, testNow)
	require.NoError(t, err)
	assert.Zero(t, purged)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestExpirySweeperTicks(t *testing.T) {
	db := newTestDB(t)
	table := seedTable(t, db, 2)
	seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, -30), 19, 0)

	sweeper := NewExpirySweeper(db, 10*time.Millisecond)
	sweeper.Now = fixedNow
	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.After(2 * time.Second)
	for {
		var count int64
		db.Model(&models.Booking{}).Count(&count)
		if count == 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("sweeper did not purge the expired booking in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestExpirySweeperStop(t *testing.T) {
	db := newTestDB(t)

	sweeper := NewExpirySweeper(db, time.Millisecond)
	sweeper.Start()
	sweeper.Stop()

	// Stop must not panic or deadlock; a stopped sweeper stays stopped.
	time.Sleep(20 * time.Millisecond)
}
