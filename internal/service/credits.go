package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching

	"eventpay/internal/apperr"  // Error kinds
	"eventpay/internal/domain"  // Importing domain models
	"eventpay/internal/pricing" // Quote calculation
	"eventpay/internal/store"   // Repositories

	"github.com/shopspring/decimal"  // Money amounts
	log "github.com/sirupsen/logrus" // Structured logging
)

// CreditService reads and tops up wallet balances
type CreditService struct {
	users   *store.UserStore
	credits *store.CreditStore
}

func NewCreditService(users *store.UserStore, credits *store.CreditStore) *CreditService {
	return &CreditService{users: users, credits: credits}
}

// Balance returns the user's current credit balance
func (s *CreditService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return decimal.Zero, apperr.NewNotFound("user not found")
		}
		return decimal.Zero, apperr.Wrap(err, "failed to load balance")
	}
	return u.Credits, nil
}

// Add increments the balance by amount, records a conversion transaction and
// returns the new balance.
func (s *CreditService) Add(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperr.NewValidation("amount must be positive")
	}
	if !pricing.IsCents(amount) {
		return decimal.Zero, apperr.NewValidation("amount must have at most 2 decimal places")
	}
	// Increment first, then record the audit entry
	if err := s.users.AdjustCredits(ctx, userID, amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return decimal.Zero, apperr.NewNotFound("user not found")
		}
		log.WithFields(log.Fields{"user_id": userID, "amount": amount.String()}).WithError(err).Error("Credit add failed")
		return decimal.Zero, apperr.Wrap(err, "failed to add credits")
	}
	tx := &domain.CreditTransaction{UserID: userID, Amount: amount, Type: domain.CreditConversion}
	if err := s.credits.Append(ctx, tx); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "amount": amount.String()}).WithError(err).Error("Failed to record credit transaction")
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount.String(),
		"type":    domain.CreditConversion,
	}).Info("Credits added")
	return s.Balance(ctx, userID) // Re-read so concurrent movements are reflected
}

// History lists the user's credit transactions, newest first
func (s *CreditService) History(ctx context.Context, userID string) ([]domain.CreditTransaction, error) {
	txs, err := s.credits.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load credit history")
	}
	return txs, nil
}
