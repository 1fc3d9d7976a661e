package quote

import (
	"errors"

	"secrethouse/internal/domain"
	"secrethouse/internal/metrics"
	"secrethouse/internal/pricing"
)

var (
	ErrUnknownTariff = errors.New("unknown tariff")
	ErrBadDate       = errors.New("booking_date must be YYYY-MM-DD")
)

// Service answers pricing questions over the live catalog snapshot.
type Service struct {
	engine  *pricing.Engine
	catalog *pricing.Catalog
}

func NewService(engine *pricing.Engine, catalog *pricing.Catalog) *Service {
	return &Service{engine: engine, catalog: catalog}
}

// Quote prices a request. When nights > 1 the multi-day total for the
// tariff replaces the per-visit base amount.
func (s *Service) Quote(req QuoteRequest) (*QuoteResponse, error) {
	tariff, err := domain.ParseTariff(req.Tariff)
	if err != nil {
		metrics.QuoteErrorsTotal.WithLabelValues("unknown_tariff").Inc()
		return nil, ErrUnknownTariff
	}

	date, err := req.date()
	if err != nil {
		metrics.QuoteErrorsTotal.WithLabelValues("bad_date").Inc()
		return nil, ErrBadDate
	}

	if req.Nights > 1 {
		amount, err := s.engine.CalculateMultiDayPrice(tariff, req.Nights)
		if err != nil {
			metrics.QuoteErrorsTotal.WithLabelValues("no_multi_day_rate").Inc()
			return nil, err
		}
		metrics.QuotesTotal.WithLabelValues(tariff.String()).Inc()
		return &QuoteResponse{
			Tariff: tariff.String(),
			Amount: amount,
			Label:  "базовая аренда",
		}, nil
	}

	q, err := s.engine.CalculatePrice(pricing.Request{
		BookingDate:   date,
		Tariff:        tariff,
		DurationHours: req.DurationHours,
		CountPeople:   req.CountPeople,
		Flags:         req.flags(),
		IsPhotoshoot:  req.IsPhotoshoot,
	})
	if err != nil {
		metrics.QuoteErrorsTotal.WithLabelValues("pricing").Inc()
		return nil, err
	}

	metrics.QuotesTotal.WithLabelValues(tariff.String()).Inc()
	return &QuoteResponse{
		Tariff:   tariff.String(),
		Amount:   q.Amount,
		Label:    q.Label,
		RuleName: q.RuleName,
		Lines:    q.Lines,
	}, nil
}

// Tariffs lists the current catalog.
func (s *Service) Tariffs() []TariffResponse {
	rates := s.catalog.Tariffs()
	out := make([]TariffResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, TariffResponse{
			Tariff:                 r.Tariff.String(),
			Price:                  r.Price,
			SaunaPrice:             r.SaunaPrice,
			SecretRoomPrice:        r.SecretRoomPrice,
			AdditionalBedroomPrice: r.SecondBedroomPrice,
			PhotoshootPrice:        r.PhotoshootPrice,
			MaxPeople:              r.MaxPeople,
			ExtraPeoplePrice:       r.ExtraPeoplePrice,
			DurationHours:          r.DurationHours,
			ExtraHourPrice:         r.ExtraHourPrice,
			MultiDayPrices:         r.MultiDayPrices,
			IsPhotoshootAvailable:  r.IsPhotoshootAvailable,
			IsTransferAvailable:    r.IsTransferAvailable,
			IsCheckInTimeLimited:   r.IsCheckInTimeLimited,
		})
	}
	return out
}
