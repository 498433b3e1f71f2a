package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // Primary key generation
	"github.com/shopspring/decimal" // Money columns
	"gorm.io/gorm"                  // Hooks
)

// Credit transaction types
const (
	CreditConversion   = "conversion"    // Manual credit add (unused balance converted after an event)
	CreditOrderPayment = "order_payment" // Credits spent on an order
)

// CreditTransaction is an append-only audit record of a wallet movement
type CreditTransaction struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"index;size:36;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // Signed amount
	Type      string          `gorm:"size:32;not null" json:"type"`
	OrderID   *string         `gorm:"size:36" json:"order_id,omitempty"` // Set for order payments
	CreatedAt time.Time       `json:"created_at"`
}

func (t *CreditTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
