package domain

import "fmt"

// Tariff is a pricing mode. The integer codes are stored in the database and
// in gift/booking rows, so they must never be renumbered.
type Tariff int

const (
	TariffHours12         Tariff = 0
	TariffDay             Tariff = 1
	TariffWorker          Tariff = 2
	TariffIncognitaDay    Tariff = 3
	TariffIncognitaHours  Tariff = 4
	TariffIncognitaWorker Tariff = 5
	TariffGift            Tariff = 6
	TariffDayForCouple    Tariff = 7
)

var tariffNames = map[Tariff]string{
	TariffHours12:         "HOURS_12",
	TariffDay:             "DAY",
	TariffWorker:          "WORKER",
	TariffIncognitaDay:    "INCOGNITA_DAY",
	TariffIncognitaHours:  "INCOGNITA_HOURS",
	TariffIncognitaWorker: "INCOGNITA_WORKER",
	TariffGift:            "GIFT",
	TariffDayForCouple:    "DAY_FOR_COUPLE",
}

func (t Tariff) String() string {
	if name, ok := tariffNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TARIFF(%d)", int(t))
}

func (t Tariff) Valid() bool {
	_, ok := tariffNames[t]
	return ok
}

// ParseTariff resolves a config-file token like "DAY" to its tariff code.
func ParseTariff(name string) (Tariff, error) {
	for t, n := range tariffNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tariff %q", name)
}

// Bedroom identifies which bedroom the guest picked. The string tokens are
// persisted as-is.
type Bedroom string

const (
	BedroomWhite Bedroom = "white"
	BedroomGreen Bedroom = "green"
	BedroomBoth  Bedroom = "both"
	BedroomNone  Bedroom = "none"
)

// PromoCodeType is extensible by integer code; BOOKING_DATES is the only
// member so far.
type PromoCodeType int

const (
	PromoCodeBookingDates PromoCodeType = 1
)
