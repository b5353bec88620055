package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
)

func newTableServiceForTest(t *testing.T) (*TableService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewTableService(db)
	svc.Now = fixedNow
	return svc, db
}

func TestCreateTable(t *testing.T) {
	svc, _ := newTableServiceForTest(t)

	table, err := svc.CreateTable(4, true)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Seats)
	assert.NotZero(t, table.ID)
}

func TestCreateTableForbidden(t *testing.T) {
	svc, db := newTableServiceForTest(t)

	_, err := svc.CreateTable(4, false)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateTableInvalidSeats(t *testing.T) {
	svc, _ := newTableServiceForTest(t)

	for _, seats := range []int{0, -3} {
		_, err := svc.CreateTable(seats, true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "seats", vErr.Field)
	}
}

func TestListTablesOccupancyFlag(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	busy := seedTable(t, db, 2)
	idle := seedTable(t, db, 4)
	seedBooking(t, db, busy.ID, DateOf(testNow).AddDate(0, 0, 3), 19, 0)

	tables, err := svc.ListTables()
	require.NoError(t, err)
	require.Len(t, tables, 2)

	byID := map[uint]models.Table{}
	for _, tb := range tables {
		byID[tb.ID] = tb
	}
	assert.True(t, byID[busy.ID].HasBooking)
	assert.False(t, byID[idle.ID].HasBooking)
}

func TestListTablesIgnoresExpiredBookings(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	table := seedTable(t, db, 2)
	seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, -BookingRetentionDays-2), 19, 0)

	tables, err := svc.ListTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.False(t, tables[0].HasBooking)

	// The list call also purged the stale row.
	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteTable(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	table := seedTable(t, db, 2)

	require.NoError(t, svc.DeleteTable(table.ID, true))

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteTableForbidden(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	table := seedTable(t, db, 2)

	assert.ErrorIs(t, svc.DeleteTable(table.ID, false), ErrForbidden)

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteTableNotFound(t *testing.T) {
	svc, _ := newTableServiceForTest(t)

	assert.ErrorIs(t, svc.DeleteTable(42, true), ErrTableNotFound)
}

func TestDeleteTableWithUpcomingBooking(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	table := seedTable(t, db, 2)
	booking := seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, 2), 19, 0)

	assert.ErrorIs(t, svc.DeleteTable(table.ID, true), ErrTableHasBookings)

	// Once the booking is gone the table can go too.
	require.NoError(t, db.Delete(&booking).Error)
	assert.NoError(t, svc.DeleteTable(table.ID, true))
}

func TestDeleteTableWithPastBookingOnly(t *testing.T) {
	svc, db := newTableServiceForTest(t)
	table := seedTable(t, db, 2)
	// Finished yesterday, still within retention.
	seedBooking(t, db, table.ID, DateOf(testNow).AddDate(0, 0, -1), 19, 0)

	assert.NoError(t, svc.DeleteTable(table.ID, true))
}
