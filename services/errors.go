package services

import "errors"

// ValidationError reports a malformed request field. Validation always runs
// before any mutation, so a rejected request writes nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var (
	ErrPastDate         = errors.New("cannot book a date and time in the past")
	ErrOutsideHours     = errors.New("requested time is outside opening hours (08:30-00:30, closed on Sunday)")
	ErrOverlap          = errors.New("table is already booked for this time")
	ErrTableNotFound    = errors.New("table not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("admin access required")
	ErrTableHasBookings = errors.New("table still has upcoming bookings")
	ErrNoTableAvailable = errors.New("no table available for the requested time and party size")
	ErrDuplicateBooking = errors.New("a booking for this phone, date and time already exists")
)
