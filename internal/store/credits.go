package store

import (
	"context" // Request-scoped cancellation

	"eventpay/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// CreditStore appends and lists credit transactions. Records are never updated.
type CreditStore struct {
	db *gorm.DB
}

// Append records one wallet movement
func (s *CreditStore) Append(ctx context.Context, tx *domain.CreditTransaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

// ListByUser returns a user's credit transactions, newest first
func (s *CreditStore) ListByUser(ctx context.Context, userID string) ([]domain.CreditTransaction, error) {
	var txs []domain.CreditTransaction
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}
