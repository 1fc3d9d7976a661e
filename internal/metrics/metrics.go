package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "secrethouse_quotes_total",
		Help: "Price quotes served, by tariff.",
	}, []string{"tariff"})

	QuoteErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "secrethouse_quote_errors_total",
		Help: "Price quote requests that failed, by reason.",
	}, []string{"reason"})

	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "secrethouse_bookings_created_total",
		Help: "Bookings accepted and persisted.",
	})

	SweeperRepairsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "secrethouse_sweeper_repairs_total",
		Help: "Rows repaired by the integrity sweeper, by category.",
	}, []string{"category"})
)
