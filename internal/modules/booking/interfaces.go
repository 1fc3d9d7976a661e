package booking

import (
	"context"

	"secrethouse/internal/domain"
	"secrethouse/internal/pricing"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByChatID(ctx context.Context, chatID int64) (*domain.User, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)
	MarkDone(ctx context.Context, id int64) error
	MarkCanceled(ctx context.Context, id int64) error
	SetFeedbackSubmitted(ctx context.Context, id int64) error
}

type GiftRepository interface {
	Create(ctx context.Context, g *domain.Gift) error
	GetByID(ctx context.Context, id int64) (*domain.Gift, error)
	GetByCode(ctx context.Context, code string) (*domain.Gift, error)
	MarkDone(ctx context.Context, id int64) error
}

// Pricer is the slice of the pricing engine this module needs.
type Pricer interface {
	CalculatePrice(req pricing.Request) (*pricing.Quote, error)
}

// Notifier is the named boundary to the admin notification channel (the
// Telegram side). Implementations live outside this repository.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingCanceled(ctx context.Context, b *domain.Booking) error
}
