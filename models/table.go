package models

import "time"

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Seats     int       `gorm:"not null" json:"seats"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// HasBooking is derived from the bookings table on read, never stored.
	HasBooking bool `gorm:"-" json:"has_booking"`
}
