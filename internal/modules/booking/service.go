package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"secrethouse/internal/domain"
	"secrethouse/internal/metrics"
	"secrethouse/internal/pkg/validator"
	"secrethouse/internal/pricing"

	nanoid "github.com/jaevor/go-nanoid"
)

// certificate codes avoid ambiguous characters (0/O, 1/I)
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type Service struct {
	users    UserRepository
	bookings BookingRepository
	gifts    GiftRepository
	pricer   Pricer
	notifs   Notifier
	newCode  func() string
}

func NewService(users UserRepository, bookings BookingRepository, gifts GiftRepository, pricer Pricer, notifs Notifier) *Service {
	gen, err := nanoid.CustomASCII(codeAlphabet, 10)
	if err != nil {
		// only possible with a broken alphabet constant
		panic(err)
	}
	return &Service{
		users:    users,
		bookings: bookings,
		gifts:    gifts,
		pricer:   pricer,
		notifs:   notifs,
		newCode:  gen,
	}
}

// CreateBooking prices the request through the engine, persists the booking
// and marks an attached gift certificate as redeemed.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.Tariff.Valid() {
		return nil, ErrValidation
	}
	if req.BookingDate.IsZero() || req.CountPeople < 0 || req.DurationHours < 0 {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	var gift *domain.Gift
	if req.GiftCode != "" {
		var err error
		gift, err = s.gifts.GetByCode(ctx, req.GiftCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrValidation
			}
			return nil, err
		}
		if gift.IsDone {
			return nil, ErrGiftUsed
		}
	}

	quote, err := s.pricer.CalculatePrice(pricing.Request{
		BookingDate:   req.BookingDate,
		Tariff:        req.Tariff,
		DurationHours: req.DurationHours,
		CountPeople:   req.CountPeople,
		Flags: pricing.Flags{
			Sauna:             req.IsSauna,
			SecretRoom:        req.IsSecretRoom,
			AdditionalBedroom: req.IsAdditionalBedroom,
		},
		IsPhotoshoot: req.IsPhotoshoot,
	})
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:              req.UserID,
		Tariff:              req.Tariff,
		StartDate:           req.BookingDate,
		EndDate:             bookingEnd(req.BookingDate, req.DurationHours),
		Amount:              quote.Amount,
		CountPeople:         req.CountPeople,
		IsSauna:             req.IsSauna,
		IsSecretRoom:        req.IsSecretRoom,
		IsAdditionalBedroom: req.IsAdditionalBedroom,
		IsPhotoshoot:        req.IsPhotoshoot,
		Bedroom:             req.Bedroom,
		WinePreference:      req.WinePreference,
		TransferAddress:     req.TransferAddress,
		Comment:             req.Comment,
	}
	if gift != nil {
		b.GiftID = &gift.ID
	}
	if fields := validator.Validate(b); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.BookingsCreatedTotal.Inc()

	if gift != nil {
		if err := s.gifts.MarkDone(ctx, gift.ID); err != nil {
			return nil, err
		}
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
			log.Printf("booking_notify_failed booking_id=%d error=%q", b.ID, err)
		}
	}

	return b, nil
}

// CreateGift prices and issues a gift certificate with a generated code.
func (s *Service) CreateGift(ctx context.Context, req CreateGiftRequest) (*domain.Gift, error) {
	if !req.Tariff.Valid() {
		return nil, ErrValidation
	}

	quote, err := s.pricer.CalculatePrice(pricing.Request{
		BookingDate: req.BookingDate,
		Tariff:      req.Tariff,
		CountPeople: req.CountPeople,
		Flags: pricing.Flags{
			Sauna:      req.IsSauna,
			SecretRoom: req.IsSecretRoom,
		},
	})
	if err != nil {
		return nil, err
	}

	g := &domain.Gift{
		UserID:   req.UserID,
		Code:     s.newCode(),
		Tariff:   req.Tariff,
		Amount:   quote.Amount,
		IsSauna:  req.IsSauna,
		IsSecret: req.IsSecretRoom,
		Comment:  req.Comment,
	}
	if fields := validator.Validate(g); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if err := s.gifts.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) CancelBooking(ctx context.Context, id int64) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.IsCanceled {
		return ErrAlreadyCanceled
	}

	if err := s.bookings.MarkCanceled(ctx, id); err != nil {
		return err
	}

	if s.notifs != nil {
		b.IsCanceled = true
		if err := s.notifs.NotifyBookingCanceled(ctx, b); err != nil {
			log.Printf("booking_notify_failed booking_id=%d error=%q", b.ID, err)
		}
	}
	return nil
}

func (s *Service) CompleteBooking(ctx context.Context, id int64) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.bookings.MarkDone(ctx, id)
}

func (s *Service) SubmitFeedback(ctx context.Context, id int64) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.bookings.SetFeedbackSubmitted(ctx, id)
}

func (s *Service) UserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func bookingEnd(start time.Time, durationHours int) time.Time {
	if durationHours <= 0 {
		durationHours = 24
	}
	return start.Add(time.Duration(durationHours) * time.Hour)
}
