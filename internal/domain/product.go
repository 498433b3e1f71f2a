package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // Primary key generation
	"github.com/shopspring/decimal" // Money columns
	"gorm.io/gorm"                  // Hooks
)

// Product is food, drink or merch sold for an event. Stock may go negative.
type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`           // Primary key (uuid)
	EventID     string          `gorm:"index;size:36;not null" json:"event_id"` // Owning event
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`              // Unit price
	Stock       int             `gorm:"not null" json:"stock"`                                 // Remaining units, no floor
	ImageBase64 *string         `gorm:"column:image_base64;type:longtext" json:"image_base64"` // Optional inline image
	Available   bool            `gorm:"not null;default:true" json:"available"`                // Shown for sale
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
