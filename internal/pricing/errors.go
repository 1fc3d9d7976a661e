package pricing

import "errors"

var (
	ErrRateNotFound     = errors.New("rate not found for tariff")
	ErrNoMultiDayRate   = errors.New("no multi-day price for requested nights")
	ErrPricingInvariant = errors.New("configured prices produce a negative amount")
)
