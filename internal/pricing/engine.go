package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"secrethouse/internal/domain"
)

// Request carries everything the engine needs to price one candidate
// booking. DurationHours of zero means "the rate's base duration".
type Request struct {
	BookingDate   time.Time
	Tariff        domain.Tariff
	DurationHours int
	CountPeople   int
	Flags         Flags
	IsPhotoshoot  bool
}

// Flags are the add-ons that participate in categorization. The photoshoot
// add-on is priced but has no label token, so it lives outside Flags.
type Flags struct {
	Sauna             bool
	SecretRoom        bool
	AdditionalBedroom bool
}

// Line is one human-readable component of a quote.
type Line struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Quote is the priced result: a non-negative integer amount in the minor
// business unit plus its breakdown.
type Quote struct {
	Amount   int64  `json:"amount"`
	Label    string `json:"label"`
	RuleName string `json:"rule_name,omitempty"`
	Lines    []Line `json:"lines"`
}

// Engine composes the rate catalog and the date-rule index. It keeps no
// state of its own; every call is a pure function of its inputs and the
// snapshots it captures.
type Engine struct {
	catalog *Catalog
	rules   *RuleIndex
}

func NewEngine(catalog *Catalog, rules *RuleIndex) *Engine {
	return &Engine{catalog: catalog, rules: rules}
}

// CalculatePrice resolves the rate, applies any date override to the base
// price, then layers add-ons, the extra-guest surcharge and the extra-hour
// surcharge on top. Date overrides never touch the unit prices of add-ons
// or surcharges.
func (e *Engine) CalculatePrice(req Request) (*Quote, error) {
	rate, err := e.catalog.Lookup(req.Tariff)
	if err != nil {
		return nil, err
	}

	quote := &Quote{}

	base := rate.Price
	if rule := e.rules.Match(req.BookingDate); rule != nil {
		base = rule.PriceOverride
		quote.RuleName = rule.Name
	}
	quote.Lines = append(quote.Lines, Line{Label: "аренда", Amount: base})

	if req.Flags.Sauna {
		quote.Lines = append(quote.Lines, Line{Label: "сауна", Amount: rate.SaunaPrice})
	}
	if req.Flags.SecretRoom {
		quote.Lines = append(quote.Lines, Line{Label: "секретная комната", Amount: rate.SecretRoomPrice})
	}
	if req.Flags.AdditionalBedroom {
		quote.Lines = append(quote.Lines, Line{Label: "дополнительная спальня", Amount: rate.SecondBedroomPrice})
	}
	// A requested photoshoot on a rate without one costs nothing; keeping
	// the offer list consistent is the caller's job.
	if req.IsPhotoshoot && rate.IsPhotoshootAvailable {
		quote.Lines = append(quote.Lines, Line{Label: "фотосессия", Amount: rate.PhotoshootPrice})
	}

	if extra := req.CountPeople - rate.MaxPeople; extra > 0 {
		quote.Lines = append(quote.Lines, Line{
			Label:  fmt.Sprintf("%d гостей", req.CountPeople),
			Amount: int64(extra) * rate.ExtraPeoplePrice,
		})
	}

	if req.DurationHours > rate.DurationHours {
		hours := req.DurationHours - rate.DurationHours
		quote.Lines = append(quote.Lines, Line{
			Label:  fmt.Sprintf("+%dч", hours),
			Amount: int64(hours) * rate.ExtraHourPrice,
		})
	}

	for _, line := range quote.Lines {
		if line.Amount < 0 {
			return nil, fmt.Errorf("%w: %s=%d (tariff %s)", ErrPricingInvariant, line.Label, line.Amount, req.Tariff)
		}
		quote.Amount += line.Amount
	}
	if quote.Amount < 0 {
		return nil, fmt.Errorf("%w: total=%d (tariff %s)", ErrPricingInvariant, quote.Amount, req.Tariff)
	}

	extraHours := 0
	if req.DurationHours > rate.DurationHours {
		extraHours = req.DurationHours - rate.DurationHours
	}
	quote.Label = Categorize(rate, req.Flags, req.CountPeople, extraHours)

	return quote, nil
}

// CalculateMultiDayPrice returns the configured total for a multi-night
// stay. Nights counts missing from the table are an error; there is no
// interpolation.
func (e *Engine) CalculateMultiDayPrice(tariff domain.Tariff, nights int) (int64, error) {
	rate, err := e.catalog.Lookup(tariff)
	if err != nil {
		return 0, err
	}
	price, ok := rate.MultiDayPrices[strconv.Itoa(nights)]
	if !ok {
		return 0, fmt.Errorf("%w: %d nights (tariff %s)", ErrNoMultiDayRate, nights, tariff)
	}
	return price, nil
}

// RequestFromDraft builds an engine request from a conversation draft.
func RequestFromDraft(d *domain.Draft) Request {
	return Request{
		BookingDate:   d.BookingDate,
		Tariff:        d.Tariff,
		DurationHours: d.DurationHours,
		CountPeople:   d.CountPeople,
		Flags: Flags{
			Sauna:             d.IsSauna,
			SecretRoom:        d.IsSecretRoom,
			AdditionalBedroom: d.IsAdditionalBedroom,
		},
		IsPhotoshoot: d.IsPhotoshoot,
	}
}

// Categorize builds the user-facing label for a priced combination. The
// token order and spelling are part of the external contract.
func Categorize(rate *domain.RentalRate, flags Flags, guestCount, extraHours int) string {
	extraGuests := guestCount > rate.MaxPeople

	if !flags.Sauna && !flags.SecretRoom && !flags.AdditionalBedroom && !extraGuests && extraHours <= 0 {
		return "базовая аренда"
	}

	var tokens []string
	if flags.Sauna {
		tokens = append(tokens, "сауна")
	}
	if flags.SecretRoom {
		tokens = append(tokens, "секретная комната")
	}
	if flags.AdditionalBedroom {
		tokens = append(tokens, "дополнительная спальня")
	}
	if extraGuests {
		tokens = append(tokens, fmt.Sprintf("%d гостей", guestCount))
	}
	if extraHours > 0 {
		tokens = append(tokens, fmt.Sprintf("+%dч", extraHours))
	}
	return strings.Join(tokens, ", ")
}
