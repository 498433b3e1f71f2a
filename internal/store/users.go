package store

import (
	"context" // Request-scoped cancellation

	"eventpay/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Money amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// UserStore persists users and their credit balance
type UserStore struct {
	db *gorm.DB
}

// Create inserts u; a taken email yields ErrDuplicate
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *UserStore) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	// Fetch user by primary key
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	// Emails are stored lower-cased, callers normalize before lookup
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// AdjustCredits atomically adds delta (which may be negative) to the balance
func (s *UserStore) AdjustCredits(ctx context.Context, id string, delta decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("credits", gorm.Expr("credits + ?", delta)) // Single-row arithmetic update
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound // No such user
	}
	return nil
}

// SetRole changes a user's role
func (s *UserStore) SetRole(ctx context.Context, id, role string) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).UpdateColumn("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
