package quote

import (
	"time"

	"secrethouse/internal/pricing"
)

// QuoteRequest is the wire form of a pricing question. Older clients send
// the second-room flag as is_second_room, newer ones as
// is_additional_bedroom; either spelling switches the same add-on.
type QuoteRequest struct {
	Tariff              string `json:"tariff" binding:"required"`
	BookingDate         string `json:"booking_date" binding:"required"`
	DurationHours       int    `json:"duration_hours"`
	CountPeople         int    `json:"count_people"`
	IsSauna             bool   `json:"is_sauna"`
	IsSecretRoom        bool   `json:"is_secret_room"`
	IsSecondRoom        bool   `json:"is_second_room"`
	IsAdditionalBedroom bool   `json:"is_additional_bedroom"`
	IsPhotoshoot        bool   `json:"is_photoshoot"`
	Nights              int    `json:"nights"`
}

// date accepts the calendar form "2006-01-02" and, for completeness,
// full RFC 3339 timestamps.
func (r QuoteRequest) date() (time.Time, error) {
	if d, err := time.Parse("2006-01-02", r.BookingDate); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, r.BookingDate)
}

func (r QuoteRequest) flags() pricing.Flags {
	return pricing.Flags{
		Sauna:             r.IsSauna,
		SecretRoom:        r.IsSecretRoom,
		AdditionalBedroom: r.IsSecondRoom || r.IsAdditionalBedroom,
	}
}

// QuoteResponse mirrors pricing.Quote with the tariff echoed back.
type QuoteResponse struct {
	Tariff   string         `json:"tariff"`
	Amount   int64          `json:"amount"`
	Label    string         `json:"label"`
	RuleName string         `json:"rule_name,omitempty"`
	Lines    []pricing.Line `json:"lines"`
}

// TariffResponse is one catalog entry as shown to clients.
type TariffResponse struct {
	Tariff                 string           `json:"tariff"`
	Price                  int64            `json:"price"`
	SaunaPrice             int64            `json:"sauna_price"`
	SecretRoomPrice        int64            `json:"secret_room_price"`
	AdditionalBedroomPrice int64            `json:"additional_bedroom_price"`
	PhotoshootPrice        int64            `json:"photoshoot_price,omitempty"`
	MaxPeople              int              `json:"max_people"`
	ExtraPeoplePrice       int64            `json:"extra_people_price"`
	DurationHours          int              `json:"duration_hours"`
	ExtraHourPrice         int64            `json:"extra_hour_price"`
	MultiDayPrices         map[string]int64 `json:"multi_day_prices,omitempty"`
	IsPhotoshootAvailable  bool             `json:"is_photoshoot_available"`
	IsTransferAvailable    bool             `json:"is_transfer_available"`
	IsCheckInTimeLimited   bool             `json:"is_check_in_time_limited"`
}
