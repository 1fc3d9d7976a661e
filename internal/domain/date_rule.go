package domain

import "time"

// DatePricingRule overrides a rate's base price for booking dates inside the
// inclusive [StartDate, EndDate] interval. Add-on and surcharge unit prices
// are not affected.
type DatePricingRule struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	PriceOverride int64     `json:"price_override" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SpanDays is the number of calendar days the interval covers, inclusive.
func (r DatePricingRule) SpanDays() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Covers reports whether the rule applies to the given booking date. Only
// the calendar date matters.
func (r DatePricingRule) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(r.StartDate)) && !d.After(truncateToDay(r.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
