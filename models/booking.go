package models

import "time"

// Booking reserves one table for a fixed 75-minute interval.
// EndsAt is always derived from StartsAt and is never edited on its own;
// a late booking may end after midnight of the following day.
type Booking struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TableID  uint      `gorm:"not null;index:idx_bookings_table_date" json:"table_id"`
	Table    Table     `json:"-"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone    string    `gorm:"type:varchar(15);not null" json:"phone"`
	Date     time.Time `gorm:"not null;index:idx_bookings_table_date;index:idx_bookings_date" json:"date"`
	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Guests   int       `gorm:"not null" json:"number_of_guests"`
	Notes    string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
