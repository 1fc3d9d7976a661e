package domain

import "time"

// Draft accumulates partial booking or cancellation input while a
// conversation is in flight. It is owned by exactly one chat scope and never
// persisted; the session store drops it on completion or abandonment.
type Draft struct {
	ChatID int64 `json:"chat_id"`

	Tariff        Tariff    `json:"tariff"`
	BookingDate   time.Time `json:"booking_date"`
	Nights        int       `json:"nights"`
	DurationHours int       `json:"duration_hours"`
	CountPeople   int       `json:"count_people"`

	IsSauna             bool    `json:"is_sauna"`
	IsSecretRoom        bool    `json:"is_secret_room"`
	IsAdditionalBedroom bool    `json:"is_additional_bedroom"`
	IsPhotoshoot        bool    `json:"is_photoshoot"`
	Bedroom             Bedroom `json:"bedroom,omitempty"`

	WinePreference  string `json:"wine_preference,omitempty"`
	TransferAddress string `json:"transfer_address,omitempty"`
	Comment         string `json:"comment,omitempty"`
	PromoCode       string `json:"promocode,omitempty"`
	GiftID          *int64 `json:"gift_id,omitempty"`

	// CancelBookingID is set while a cancellation flow is collecting
	// confirmation for an existing booking.
	CancelBookingID *int64 `json:"cancel_booking_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
