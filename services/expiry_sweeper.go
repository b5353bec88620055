package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
	"github.com/cafereservas/booking-app/utils"
)

// BookingRetentionDays is how long a booking stays in the system after its
// date. A booking dated 16 or more days before the reference date is
// expired: kept bookings satisfy date > reference - 16d.
const BookingRetentionDays = 16

func expiryCutoff(ref time.Time) time.Time {
	return DateOf(ref).AddDate(0, 0, -BookingRetentionDays)
}

// PurgeExpired deletes every booking whose date has passed the retention
// threshold relative to ref and returns how many rows went away. Idempotent,
// so the list handlers and the background sweeper can both call it freely.
func PurgeExpired(db *gorm.DB, ref time.Time) (int64, error) {
	res := db.Where("date <= ?", expiryCutoff(ref)).Delete(&models.Booking{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Purged %d expired booking(s)", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// ExpirySweeper purges expired bookings on a timer so retention does not
// depend on somebody hitting a list endpoint.
type ExpirySweeper struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	Now      func() time.Time
}

func NewExpirySweeper(db *gorm.DB, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: interval,
		Now:      time.Now,
	}
}

func (s *ExpirySweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.StopChan:
				return
			}
		}
	}()
}

func (s *ExpirySweeper) Stop() {
	close(s.StopChan)
}

func (s *ExpirySweeper) sweep() {
	if _, err := PurgeExpired(s.DB, s.Now()); err != nil {
		utils.ErrorLogger.Printf("Error purging expired bookings: %v", err)
	}
	// Same housekeeping tick also drops stale revoked tokens.
	utils.CleanupBlacklist()
}
