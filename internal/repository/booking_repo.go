package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                  int64     `gorm:"column:id;primaryKey"`
	UserID              int64     `gorm:"column:user_id"`
	GiftID              *int64    `gorm:"column:gift_id"`
	Tariff              int       `gorm:"column:tariff"`
	StartDate           time.Time `gorm:"column:start_date"`
	EndDate             time.Time `gorm:"column:end_date"`
	Amount              int64     `gorm:"column:amount"`
	CountPeople         int       `gorm:"column:count_people"`
	IsSauna             bool      `gorm:"column:is_sauna"`
	IsSecretRoom        bool      `gorm:"column:is_secret_room"`
	IsAdditionalBedroom bool      `gorm:"column:is_additional_bedroom"`
	IsPhotoshoot        bool      `gorm:"column:is_photoshoot"`
	Bedroom             string    `gorm:"column:bedroom"`
	WinePreference      *string   `gorm:"column:wine_preference"`
	TransferAddress     *string   `gorm:"column:transfer_address"`
	Comment             string    `gorm:"column:comment"`
	FeedbackSubmitted   bool      `gorm:"column:feedback_submitted"`
	IsDone              bool      `gorm:"column:is_done"`
	IsCanceled          bool      `gorm:"column:is_canceled"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:                  m.ID,
		UserID:              m.UserID,
		GiftID:              m.GiftID,
		Tariff:              domain.Tariff(m.Tariff),
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Amount:              m.Amount,
		CountPeople:         m.CountPeople,
		IsSauna:             m.IsSauna,
		IsSecretRoom:        m.IsSecretRoom,
		IsAdditionalBedroom: m.IsAdditionalBedroom,
		IsPhotoshoot:        m.IsPhotoshoot,
		Bedroom:             domain.Bedroom(m.Bedroom),
		Comment:             m.Comment,
		FeedbackSubmitted:   m.FeedbackSubmitted,
		IsDone:              m.IsDone,
		IsCanceled:          m.IsCanceled,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.WinePreference != nil {
		b.WinePreference = *m.WinePreference
	}
	if m.TransferAddress != nil {
		b.TransferAddress = *m.TransferAddress
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:                  b.ID,
		UserID:              b.UserID,
		GiftID:              b.GiftID,
		Tariff:              int(b.Tariff),
		StartDate:           b.StartDate,
		EndDate:             b.EndDate,
		Amount:              b.Amount,
		CountPeople:         b.CountPeople,
		IsSauna:             b.IsSauna,
		IsSecretRoom:        b.IsSecretRoom,
		IsAdditionalBedroom: b.IsAdditionalBedroom,
		IsPhotoshoot:        b.IsPhotoshoot,
		Bedroom:             string(b.Bedroom),
		Comment:             b.Comment,
		FeedbackSubmitted:   b.FeedbackSubmitted,
		IsDone:              b.IsDone,
		IsCanceled:          b.IsCanceled,
	}
	if b.WinePreference != "" {
		v := b.WinePreference
		m.WinePreference = &v
	}
	if b.TransferAddress != "" {
		v := b.TransferAddress
		m.TransferAddress = &v
	}
	return m
}

// Create inserts the booking and refreshes the owner's counters in the same
// transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		b.ID = m.ID
		b.CreatedAt = m.CreatedAt
		b.UpdatedAt = m.UpdatedAt
		return refreshUserCounters(tx, b.UserID)
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	bookings := make([]*domain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(m)
	}
	return bookings, nil
}

func (r *BookingRepository) setFlag(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&bookingModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return refreshUserCounters(tx, m.UserID)
	})
}

func (r *BookingRepository) MarkDone(ctx context.Context, id int64) error {
	return r.setFlag(ctx, id, map[string]any{"is_done": true})
}

func (r *BookingRepository) MarkCanceled(ctx context.Context, id int64) error {
	return r.setFlag(ctx, id, map[string]any{"is_canceled": true})
}

func (r *BookingRepository) SetFeedbackSubmitted(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Update("feedback_submitted", true).Error
}

// refreshUserCounters recomputes the derived counters for one user from the
// authoritative booking rows. Cheap enough to run on every write, and it
// keeps every transition (create, done, cancel) consistent.
func refreshUserCounters(tx *gorm.DB, userID int64) error {
	statements := []string{
		`UPDATE users SET total_bookings =
			(SELECT COUNT(*) FROM bookings b WHERE b.user_id = users.id) WHERE id = ?`,
		`UPDATE users SET completed_bookings =
			(SELECT COUNT(*) FROM bookings b
			 WHERE b.user_id = users.id AND b.is_done AND NOT b.is_canceled) WHERE id = ?`,
		`UPDATE users SET has_bookings = (total_bookings > 0) WHERE id = ?`,
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt, userID).Error; err != nil {
			return err
		}
	}
	return nil
}
