package domain

import "time"

type User struct {
	ID       int64  `json:"id"`
	ChatID   *int64 `json:"chat_id,omitempty"`
	UserName string `json:"user_name"`
	Contact  string `json:"contact,omitempty"`
	IsActive bool   `json:"is_active"`

	// Booking counters are maintained on write and recomputed by the
	// backfill migration from authoritative booking rows.
	HasBookings       bool `json:"has_bookings"`
	TotalBookings     int  `json:"total_bookings"`
	CompletedBookings int  `json:"completed_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
