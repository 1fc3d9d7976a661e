package domain

import "time"

type Booking struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id" validate:"required"`
	GiftID *int64 `json:"gift_id,omitempty"`

	Tariff      Tariff    `json:"tariff"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Amount      int64     `json:"amount" validate:"gte=0"`
	CountPeople int       `json:"count_people"`

	IsSauna             bool    `json:"is_sauna"`
	IsSecretRoom        bool    `json:"is_secret_room"`
	IsAdditionalBedroom bool    `json:"is_additional_bedroom"`
	IsPhotoshoot        bool    `json:"is_photoshoot"`
	Bedroom             Bedroom `json:"bedroom,omitempty"`

	WinePreference    string `json:"wine_preference,omitempty"`
	TransferAddress   string `json:"transfer_address,omitempty"`
	Comment           string `json:"comment,omitempty"`
	FeedbackSubmitted bool   `json:"feedback_submitted"`
	IsDone            bool   `json:"is_done"`
	IsCanceled        bool   `json:"is_canceled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Gift *Gift `json:"gift,omitempty"`
}
