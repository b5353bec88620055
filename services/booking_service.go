package services

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/models"
	"github.com/cafereservas/booking-app/utils"
)

const (
	maxNameLen     = 100
	maxNotesLen    = 1000
	minPhoneDigits = 9
	maxPhoneDigits = 15
	minGuests      = 1
	maxGuests      = 100
)

var (
	// Letters (accents included), spaces, hyphens and apostrophes.
	nameRe = regexp.MustCompile(`^[A-Za-zÀ-ÿ' -]+$`)
	// Alphanumerics, accents and common punctuation.
	notesRe    = regexp.MustCompile(`^[A-Za-z0-9À-ÿ\s.,!?:;'"()-]+$`)
	nonDigitRe = regexp.MustCompile(`\D+`)
)

// BookingService orchestrates the booking lifecycle: validated atomic
// creation, listing with admin/public views and admin cancellation.
// Now is swappable so tests can pin the clock.
type BookingService struct {
	DB  *gorm.DB
	Now func() time.Time

	mu        sync.Mutex
	dateLocks map[string]*sync.Mutex
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		DB:        db,
		Now:       time.Now,
		dateLocks: make(map[string]*sync.Mutex),
	}
}

// dateLock returns the mutex serializing creates for one calendar date.
// Coarser than per table+date on purpose: automatic table selection scans
// several tables, and a per-table key would let a direct request race it.
func (s *BookingService) dateLock(date time.Time) *sync.Mutex {
	key := date.Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.dateLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.dateLocks[key] = lock
	}
	return lock
}

// CreateBookingInput carries the raw customer request. TableID zero lets
// the service pick a table for the party size.
type CreateBookingInput struct {
	TableID uint
	Name    string
	Phone   string
	Date    string // "2006-01-02"
	Time    string // "15:04"
	Guests  int
	Notes   string
}

// CreateBooking validates every field, then runs the whole
// check-then-insert sequence under the date lock inside one transaction.
// Two concurrent requests for an overlapping slot cannot both succeed.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if len(name) > maxNameLen {
		return nil, &ValidationError{Field: "name", Reason: "must be at most 100 characters"}
	}
	if !nameRe.MatchString(name) {
		return nil, &ValidationError{Field: "name", Reason: "may only contain letters, spaces, hyphens and apostrophes"}
	}

	phone := nonDigitRe.ReplaceAllString(in.Phone, "")
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return nil, &ValidationError{Field: "phone", Reason: "must contain between 9 and 15 digits"}
	}

	if in.Guests < minGuests || in.Guests > maxGuests {
		return nil, &ValidationError{Field: "number_of_guests", Reason: "must be between 1 and 100"}
	}

	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLen {
		return nil, &ValidationError{Field: "notes", Reason: "must be at most 1000 characters"}
	}
	if notes != "" && !notesRe.MatchString(notes) {
		return nil, &ValidationError{Field: "notes", Reason: "contains invalid characters"}
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must use the YYYY-MM-DD format"}
	}
	clock, err := time.Parse("15:04", in.Time)
	if err != nil {
		return nil, &ValidationError{Field: "time", Reason: "must use the HH:MM format"}
	}

	startsAt := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	endsAt := startsAt.Add(ReservationDuration)
	now := s.Now()

	if startsAt.Before(now) {
		return nil, ErrPastDate
	}
	if !WithinOpeningHours(startsAt) {
		return nil, ErrOutsideHours
	}

	date := DateOf(startsAt)
	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	booking := &models.Booking{
		Name:     name,
		Phone:    phone,
		Date:     date,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Guests:   in.Guests,
		Notes:    notes,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var duplicates int64
		if err := tx.Model(&models.Booking{}).
			Where("phone = ? AND date = ? AND starts_at = ?", phone, date, startsAt).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return ErrDuplicateBooking
		}

		if in.TableID != 0 {
			if err := CheckAvailability(tx, in.TableID, startsAt, now); err != nil {
				return err
			}
			booking.TableID = in.TableID
		} else {
			tableID, err := pickTable(tx, in.Guests, startsAt, now)
			if err != nil {
				return err
			}
			booking.TableID = tableID
		}

		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("New booking %d: table %d on %s at %s for %d guest(s)",
		booking.ID, booking.TableID, in.Date, in.Time, booking.Guests)
	return booking, nil
}

// pickTable finds a free table for the party, preferring an exact capacity
// match and falling back to the smallest larger table.
func pickTable(tx *gorm.DB, guests int, startsAt, now time.Time) (uint, error) {
	var candidates []models.Table
	if err := tx.Where("seats = ?", guests).Order("id").Find(&candidates).Error; err != nil {
		return 0, err
	}

	var larger []models.Table
	if err := tx.Where("seats > ?", guests).Order("seats, id").Find(&larger).Error; err != nil {
		return 0, err
	}
	candidates = append(candidates, larger...)

	for _, table := range candidates {
		err := CheckAvailability(tx, table.ID, startsAt, now)
		if err == nil {
			return table.ID, nil
		}
		if !errors.Is(err, ErrOverlap) {
			return 0, err
		}
	}
	return 0, ErrNoTableAvailable
}

// OccupancySlot is the redacted public view of a booking: which table is
// taken and when, no customer details.
type OccupancySlot struct {
	TableID   uint   `json:"table_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ListBookings purges expired rows first, then returns full records for
// admins or occupancy summaries for everybody else.
func (s *BookingService) ListBookings(isAdmin bool) ([]models.Booking, []OccupancySlot, error) {
	if _, err := PurgeExpired(s.DB, s.Now()); err != nil {
		return nil, nil, err
	}

	// Non-nil even when empty, the admin branch depends on it.
	bookings := make([]models.Booking, 0)
	if err := s.DB.Order("date, starts_at, table_id").Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	if isAdmin {
		return bookings, nil, nil
	}

	slots := make([]OccupancySlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, OccupancySlot{
			TableID:   b.TableID,
			Date:      b.Date.Format("2006-01-02"),
			StartTime: b.StartsAt.Format("15:04"),
			EndTime:   b.EndsAt.Format("15:04"),
		})
	}
	return nil, slots, nil
}

// CancelBooking deletes a booking immediately. Admin capability required;
// deletion is irreversible.
func (s *BookingService) CancelBooking(id uint, isAdmin bool) error {
	if !isAdmin {
		return ErrForbidden
	}

	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if err := s.DB.Delete(&booking).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Booking %d cancelled (table %d, %s)",
		booking.ID, booking.TableID, booking.Date.Format("2006-01-02"))
	return nil
}
