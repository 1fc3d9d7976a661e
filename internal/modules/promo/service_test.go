package promo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *domain.PromoCode) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *MockRepository) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoCode), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PromoCode), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ptr(t time.Time) *time.Time { return &t }

func TestCreateGeneratesCode(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PromoCode")).Return(nil)

	svc := NewService(repo)
	p, err := svc.Create(context.Background(), CreateRequest{})

	require.NoError(t, err)
	assert.Len(t, p.Code, 8)
	assert.True(t, p.IsActive)
	assert.Equal(t, domain.PromoCodeBookingDates, p.Type)
	repo.AssertExpectations(t)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	svc := NewService(new(MockRepository))

	_, err := svc.Create(context.Background(), CreateRequest{
		StartDate: ptr(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRedeemActiveInsideWindow(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByCode", mock.Anything, "SUMMER24").Return(&domain.PromoCode{
		ID:        1,
		Code:      "SUMMER24",
		IsActive:  true,
		StartDate: ptr(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr(time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)),
	}, nil)

	svc := NewService(repo)
	p, err := svc.Redeem(context.Background(), "SUMMER24", time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "SUMMER24", p.Code)
}

func TestRedeemOutsideWindow(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByCode", mock.Anything, "SUMMER24").Return(&domain.PromoCode{
		Code:     "SUMMER24",
		IsActive: true,
		EndDate:  ptr(time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)),
	}, nil)

	svc := NewService(repo)
	_, err := svc.Redeem(context.Background(), "SUMMER24", time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestRedeemInactive(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByCode", mock.Anything, "OLD").Return(&domain.PromoCode{Code: "OLD"}, nil)

	svc := NewService(repo)
	_, err := svc.Redeem(context.Background(), "OLD", time.Now())
	assert.ErrorIs(t, err, ErrExpired)
}

func TestRedeemUnknownCode(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByCode", mock.Anything, "NOPE").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo)
	_, err := svc.Redeem(context.Background(), "NOPE", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateUnknownID(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Deactivate", mock.Anything, int64(9)).Return(gorm.ErrRecordNotFound)

	svc := NewService(repo)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 9), ErrNotFound)
}
