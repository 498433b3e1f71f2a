package store

import (
	"context" // Request-scoped cancellation
	"time"    // Timestamps

	"eventpay/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// OrderStore persists orders with their items
type OrderStore struct {
	db *gorm.DB
}

// Create inserts o and its items; a reused redemption code yields ErrDuplicate
func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	return translate(s.db.WithContext(ctx).Create(o).Error)
}

func (s *OrderStore) ByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.first(ctx, "id = ?", id)
}

// ByCode finds the order carrying the redemption code
func (s *OrderStore) ByCode(ctx context.Context, code string) (*domain.Order, error) {
	return s.first(ctx, "qr_code = ?", code)
}

func (s *OrderStore) first(ctx context.Context, query string, arg any) (*domain.Order, error) {
	var o domain.Order
	// Preload the item snapshots with the order
	if err := s.db.WithContext(ctx).Preload("Items").Where(query, arg).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first
func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.find(ctx, s.db.Where("user_id = ?", userID))
}

// ListAll returns every order, newest first
func (s *OrderStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.find(ctx, s.db)
}

// ListPaid returns every order whose payment status is paid
func (s *OrderStore) ListPaid(ctx context.Context) ([]domain.Order, error) {
	return s.find(ctx, s.db.Where("payment_status = ?", domain.PaymentPaid))
}

func (s *OrderStore) find(ctx context.Context, q *gorm.DB) ([]domain.Order, error) {
	var orders []domain.Order
	if err := q.WithContext(ctx).Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkValidated moves a pending order to validated, stamping at. It reports
// false when the order was no longer pending.
func (s *OrderStore) MarkValidated(ctx context.Context, id string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, domain.OrderPending). // Only pending orders transition
		UpdateColumns(map[string]any{"status": domain.OrderValidated, "validated_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
