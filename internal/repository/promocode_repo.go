package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

type PromoCodeRepository struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) *PromoCodeRepository {
	return &PromoCodeRepository{db: db}
}

type promoCodeModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Code          string     `gorm:"column:code"`
	PromocodeType int        `gorm:"column:promocode_type"`
	IsActive      bool       `gorm:"column:is_active"`
	StartDate     *time.Time `gorm:"column:start_date"`
	EndDate       *time.Time `gorm:"column:end_date"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
}

func (promoCodeModel) TableName() string { return "promocodes" }

func toDomainPromoCode(m promoCodeModel) *domain.PromoCode {
	return &domain.PromoCode{
		ID:        m.ID,
		Code:      m.Code,
		Type:      domain.PromoCodeType(m.PromocodeType),
		IsActive:  m.IsActive,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PromoCodeRepository) Create(ctx context.Context, p *domain.PromoCode) error {
	m := promoCodeModel{
		Code:          p.Code,
		PromocodeType: int(p.Type),
		IsActive:      p.IsActive,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *PromoCodeRepository) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var m promoCodeModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainPromoCode(m), nil
}

func (r *PromoCodeRepository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	var models []promoCodeModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	codes := make([]*domain.PromoCode, len(models))
	for i, m := range models {
		codes[i] = toDomainPromoCode(m)
	}
	return codes, nil
}

func (r *PromoCodeRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&promoCodeModel{}).Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
