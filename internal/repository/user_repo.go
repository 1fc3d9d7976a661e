package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"secrethouse/internal/domain"
)

var ErrChatIDTaken = errors.New("chat_id already belongs to another user")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	ChatID            *int64    `gorm:"column:chat_id"`
	UserName          string    `gorm:"column:user_name"`
	Contact           *string   `gorm:"column:contact"`
	IsActive          bool      `gorm:"column:is_active"`
	HasBookings       bool      `gorm:"column:has_bookings"`
	TotalBookings     int       `gorm:"column:total_bookings"`
	CompletedBookings int       `gorm:"column:completed_bookings"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	u := &domain.User{
		ID:                m.ID,
		ChatID:            m.ChatID,
		UserName:          m.UserName,
		IsActive:          m.IsActive,
		HasBookings:       m.HasBookings,
		TotalBookings:     m.TotalBookings,
		CompletedBookings: m.CompletedBookings,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Contact != nil {
		u.Contact = *m.Contact
	}
	return u
}

func toUserModel(u *domain.User) userModel {
	m := userModel{
		ID:                u.ID,
		ChatID:            u.ChatID,
		UserName:          strings.TrimSpace(u.UserName),
		IsActive:          u.IsActive,
		HasBookings:       u.HasBookings,
		TotalBookings:     u.TotalBookings,
		CompletedBookings: u.CompletedBookings,
	}
	if u.Contact != "" {
		contact := u.Contact
		m.Contact = &contact
	}
	return m
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapChatIDConflict(err)
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) UpdateContact(ctx context.Context, id int64, contact string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Update("contact", contact).Error
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).
		Update("is_active", active).Error
}

// mapChatIDConflict translates a unique violation on users.chat_id into the
// package sentinel. Postgres reports code 23505; the modernc sqlite driver
// only gives us the message text.
func mapChatIDConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrChatIDTaken
	}
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.chat_id") {
		return ErrChatIDTaken
	}
	return err
}
