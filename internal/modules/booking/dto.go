package booking

import (
	"time"

	"secrethouse/internal/domain"
)

type CreateBookingRequest struct {
	UserID              int64          `json:"user_id" binding:"required"`
	Tariff              domain.Tariff  `json:"tariff"`
	BookingDate         time.Time      `json:"booking_date" binding:"required"`
	DurationHours       int            `json:"duration_hours"`
	CountPeople         int            `json:"count_people" binding:"gte=0"`
	IsSauna             bool           `json:"is_sauna"`
	IsSecretRoom        bool           `json:"is_secret_room"`
	IsAdditionalBedroom bool           `json:"is_additional_bedroom"`
	IsPhotoshoot        bool           `json:"is_photoshoot"`
	Bedroom             domain.Bedroom `json:"bedroom"`
	WinePreference      string         `json:"wine_preference"`
	TransferAddress     string         `json:"transfer_address"`
	Comment             string         `json:"comment"`
	GiftCode            string         `json:"gift_code"`
}

type CreateGiftRequest struct {
	UserID       int64         `json:"user_id" binding:"required"`
	Tariff       domain.Tariff `json:"tariff"`
	BookingDate  time.Time     `json:"booking_date"`
	CountPeople  int           `json:"count_people" binding:"gte=0"`
	IsSauna      bool          `json:"is_sauna"`
	IsSecretRoom bool          `json:"is_secret_room"`
	Comment      string        `json:"comment"`
}
