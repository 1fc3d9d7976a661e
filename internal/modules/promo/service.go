package promo

import (
	"context"
	"errors"
	"time"

	"github.com/jaevor/go-nanoid"
	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

var (
	ErrValidation = errors.New("invalid promo code data")
	ErrNotFound   = errors.New("promo code not found")
	ErrExpired    = errors.New("promo code expired")
)

// Unambiguous uppercase alphabet, same one the gift codes use.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type Repository interface {
	Create(ctx context.Context, p *domain.PromoCode) error
	FindByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	List(ctx context.Context) ([]*domain.PromoCode, error)
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo    Repository
	newCode func() string
}

func NewService(repo Repository) *Service {
	gen, err := nanoid.CustomASCII(codeAlphabet, 8)
	if err != nil {
		panic(err)
	}
	return &Service{repo: repo, newCode: gen}
}

type CreateRequest struct {
	Type      domain.PromoCodeType `json:"promocode_type"`
	StartDate *time.Time           `json:"start_date"`
	EndDate   *time.Time           `json:"end_date"`
}

// Create issues a promo code with a generated short code. An inverted
// validity interval is rejected rather than normalized.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.PromoCode, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, ErrValidation
	}
	if req.Type == 0 {
		req.Type = domain.PromoCodeBookingDates
	}

	p := &domain.PromoCode{
		Code:      s.newCode(),
		Type:      req.Type,
		IsActive:  true,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Redeem looks a code up and checks it is active and inside its validity
// window at the given moment.
func (s *Service) Redeem(ctx context.Context, code string, at time.Time) (*domain.PromoCode, error) {
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrExpired
	}
	if p.StartDate != nil && at.Before(*p.StartDate) {
		return nil, ErrExpired
	}
	if p.EndDate != nil && at.After(*p.EndDate) {
		return nil, ErrExpired
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.PromoCode, error) {
	return s.repo.List(ctx)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
