package domain

import "time"

// Gift is a paid certificate a user can later redeem for a stay. A gift
// referenced by any booking is considered used (IsDone=true).
type Gift struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" validate:"required"`
	Code      string    `json:"code"`
	Tariff    Tariff    `json:"tariff"`
	Amount    int64     `json:"amount" validate:"gte=0"`
	IsDone    bool      `json:"is_done"`
	IsSauna   bool      `json:"is_sauna"`
	IsSecret  bool      `json:"is_secret_room"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
