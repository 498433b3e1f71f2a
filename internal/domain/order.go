package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // Primary key generation
	"github.com/shopspring/decimal" // Money columns
	"gorm.io/gorm"                  // Hooks
)

// Order lifecycle statuses
const (
	OrderPending   = "pending"
	OrderValidated = "validated"
	OrderCancelled = "cancelled" // Declared; nothing transitions into it yet
)

// PaymentPaid is the only payment status; there is no gateway behind it.
const PaymentPaid = "paid"

// Order is a settled purchase. EventName and item names are snapshots taken at
// purchase time and are never rewritten when the catalog changes.
type Order struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`                               // Primary key (uuid)
	UserID          string          `gorm:"index;size:36;not null" json:"user_id"`                      // Buyer
	EventID         string          `gorm:"index;size:36;not null" json:"event_id"`                     // Event the order was placed for
	EventName       string          `gorm:"size:255;not null" json:"event_name"`                        // Snapshot of the event name
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE;" json:"items"`                  // Line items
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`                // Sum of unit price times quantity
	PlatformFee     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"platform_fee"`            // 10% of subtotal, rounded to cents
	CreditsUsed     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"credits_used"`            // Credits debited from the wallet
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`                   // Amount charged, never negative
	OrganizerAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"organizer_amount"`        // Organizer payout (equals subtotal)
	PaymentStatus   string          `gorm:"size:16;index;not null" json:"payment_status"`               // Always paid
	QRCode          string          `gorm:"column:qr_code;uniqueIndex;size:64;not null" json:"qr_code"` // Redemption code, ORDER-<uuid>
	Status          string          `gorm:"size:16;not null" json:"status"`                             // pending or validated
	CreatedAt       time.Time       `json:"created_at"`                                                 // Placement time
	ValidatedAt     *time.Time      `json:"validated_at,omitempty"`                                     // Set on first redemption
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is one line of an order
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     string          `gorm:"index;size:36;not null" json:"-"`
	ProductID   string          `gorm:"size:36;not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"` // Snapshot of the product name
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"` // Price as submitted by the buyer
}
