package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

type GiftRepository struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

type giftModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id"`
	Code      string    `gorm:"column:code"`
	Tariff    int       `gorm:"column:tariff"`
	Amount    int64     `gorm:"column:amount"`
	IsDone    bool      `gorm:"column:is_done"`
	IsSauna   bool      `gorm:"column:is_sauna"`
	IsSecret  bool      `gorm:"column:is_secret"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (giftModel) TableName() string { return "gifts" }

func toDomainGift(m giftModel) *domain.Gift {
	return &domain.Gift{
		ID:        m.ID,
		UserID:    m.UserID,
		Code:      m.Code,
		Tariff:    domain.Tariff(m.Tariff),
		Amount:    m.Amount,
		IsDone:    m.IsDone,
		IsSauna:   m.IsSauna,
		IsSecret:  m.IsSecret,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *GiftRepository) Create(ctx context.Context, g *domain.Gift) error {
	m := giftModel{
		UserID:   g.UserID,
		Code:     g.Code,
		Tariff:   int(g.Tariff),
		Amount:   g.Amount,
		IsDone:   g.IsDone,
		IsSauna:  g.IsSauna,
		IsSecret: g.IsSecret,
		Comment:  g.Comment,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	g.ID = m.ID
	g.CreatedAt = m.CreatedAt
	g.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id int64) (*domain.Gift, error) {
	var m giftModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainGift(m), nil
}

func (r *GiftRepository) GetByCode(ctx context.Context, code string) (*domain.Gift, error) {
	var m giftModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainGift(m), nil
}

// MarkDone flags the certificate as redeemed. Invariant: any gift referenced
// by a booking row must be done.
func (r *GiftRepository) MarkDone(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&giftModel{}).Where("id = ?", id).
		Update("is_done", true).Error
}

func (r *GiftRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Gift, error) {
	var models []giftModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	gifts := make([]*domain.Gift, len(models))
	for i, m := range models {
		gifts[i] = toDomainGift(m)
	}
	return gifts, nil
}
