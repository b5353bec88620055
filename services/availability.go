package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
)

// Every reservation occupies its table for exactly this long. The end time
// is derived from the start and never stored independently.
const ReservationDuration = 75 * time.Minute

// The cafe opens at 08:30 and closes at 00:30 of the following day, every
// day except Sunday. A late Saturday booking may therefore end inside the
// small hours of Sunday; the window belongs to the day it opened.
const (
	openingMinute = 8*60 + 30  // 08:30
	closingMinute = 24*60 + 30 // 00:30 next day
	closedWeekday = time.Sunday
)

// CheckAvailability decides whether a 75-minute reservation starting at
// startsAt can be placed on the given table. Pure read, no side effects.
// Failures are typed so callers can tell the customer why:
// ErrTableNotFound, ErrPastDate, ErrOutsideHours or ErrOverlap.
func CheckAvailability(db *gorm.DB, tableID uint, startsAt time.Time, now time.Time) error {
	var table models.Table
	if err := db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return err
	}

	if startsAt.Before(now) {
		return ErrPastDate
	}
	if !WithinOpeningHours(startsAt) {
		return ErrOutsideHours
	}

	existing, err := bookingsForTableOnDate(db, tableID, DateOf(startsAt), now)
	if err != nil {
		return err
	}

	endsAt := startsAt.Add(ReservationDuration)
	for _, b := range existing {
		if Overlaps(startsAt, endsAt, b.StartsAt, b.EndsAt) {
			return ErrOverlap
		}
	}
	return nil
}

// Overlaps reports whether two half-open [start, end) intervals share any
// instant. Touching endpoints do not count, so back-to-back bookings on the
// same table are fine.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// WithinOpeningHours reports whether the whole reservation interval fits in
// the opening window of the start's day. The latest admissible start is
// 23:15, so the booking ends exactly at the 00:30 close.
func WithinOpeningHours(startsAt time.Time) bool {
	if startsAt.Weekday() == closedWeekday {
		return false
	}
	minute := startsAt.Hour()*60 + startsAt.Minute()
	return minute >= openingMinute && minute+int(ReservationDuration.Minutes()) <= closingMinute
}

// DateOf truncates a timestamp to its calendar date at midnight UTC. All
// booking dates are stored in this form so equality lookups work.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bookingsForTableOnDate loads the bookings that count for availability on
// one table and date. Expired rows are filtered out even if the sweeper has
// not deleted them yet; they are not authoritative.
func bookingsForTableOnDate(db *gorm.DB, tableID uint, date time.Time, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Where("table_id = ? AND date = ? AND date > ?", tableID, date, expiryCutoff(now)).
		Find(&bookings).Error
	return bookings, err
}
