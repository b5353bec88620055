package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
	"github.com/cafereservas/booking-app/utils"
)

// TableService is the registry of bookable tables.
type TableService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db, Now: time.Now}
}

// CreateTable registers a new table with the given capacity. Admin only.
func (s *TableService) CreateTable(seats int, isAdmin bool) (*models.Table, error) {
	if !isAdmin {
		return nil, ErrForbidden
	}
	if seats < 1 {
		return nil, &ValidationError{Field: "seats", Reason: "must be a positive integer"}
	}

	table := &models.Table{Seats: seats}
	if err := s.DB.Create(table).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("New table %d created (%d seats)", table.ID, table.Seats)
	return table, nil
}

// ListTables returns every table with its derived occupancy flag. The flag
// is recomputed from the booking store on each call, never persisted.
func (s *TableService) ListTables() ([]models.Table, error) {
	if _, err := PurgeExpired(s.DB, s.Now()); err != nil {
		return nil, err
	}

	var tables []models.Table
	if err := s.DB.Order("id").Find(&tables).Error; err != nil {
		return nil, err
	}

	var bookedIDs []uint
	if err := s.DB.Model(&models.Booking{}).
		Where("date > ?", expiryCutoff(s.Now())).
		Distinct().
		Pluck("table_id", &bookedIDs).Error; err != nil {
		return nil, err
	}

	booked := make(map[uint]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}
	for i := range tables {
		tables[i].HasBooking = booked[tables[i].ID]
	}
	return tables, nil
}

// DeleteTable removes a table. Rejected while the table still has future
// (non-expired) bookings, so no booking is ever orphaned.
func (s *TableService) DeleteTable(id uint, isAdmin bool) error {
	if !isAdmin {
		return ErrForbidden
	}

	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return err
	}

	var upcoming int64
	if err := s.DB.Model(&models.Booking{}).
		Where("table_id = ? AND ends_at > ?", id, s.Now()).
		Count(&upcoming).Error; err != nil {
		return err
	}
	if upcoming > 0 {
		return ErrTableHasBookings
	}

	if err := s.DB.Delete(&table).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	return nil
}
