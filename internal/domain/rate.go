package domain

// RentalRate describes one tariff's pricing. All prices are integers in the
// minor business unit; there is no floating point anywhere in pricing.
type RentalRate struct {
	Tariff             Tariff           `json:"tariff"`
	Name               string           `json:"name"`
	DurationHours      int              `json:"duration_hours"`
	Price              int64            `json:"price"`
	SaunaPrice         int64            `json:"sauna_price"`
	SecretRoomPrice    int64            `json:"secret_room_price"`
	SecondBedroomPrice int64            `json:"second_bedroom_price"`
	PhotoshootPrice    int64            `json:"photoshoot_price"`
	ExtraHourPrice     int64            `json:"extra_hour_price"`
	ExtraPeoplePrice   int64            `json:"extra_people_price"`
	MaxPeople          int              `json:"max_people"`

	IsCheckInTimeLimited  bool `json:"is_check_in_time_limited"`
	IsPhotoshootAvailable bool `json:"is_photoshoot_available"`
	IsTransferAvailable   bool `json:"is_transfer_available"`

	// MultiDayPrices maps a stringified nights count ("1", "2", ...) to the
	// total price for that many nights. Missing keys mean the tariff has no
	// multi-day offer for that span.
	MultiDayPrices map[string]int64 `json:"multi_day_prices,omitempty"`
}
