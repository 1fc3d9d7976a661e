package domain

import "time"

// PromoCode carries a distributable code. How a code is applied to a booking
// is decided by the conversation front-end; this side only stores and hands
// codes out.
type PromoCode struct {
	ID        int64         `json:"id"`
	Code      string        `json:"code" validate:"required"`
	Type      PromoCodeType `json:"promocode_type"`
	IsActive  bool          `json:"is_active"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
