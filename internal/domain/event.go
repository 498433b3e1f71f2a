package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Primary key generation
	"gorm.io/gorm"           // Hooks
)

// Event statuses
const (
	EventActive   = "active"
	EventFinished = "finished" // Set by the scheduler once the event date has passed
)

// Event is a happening products are sold for
type Event struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"` // Primary key (uuid)
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"index" json:"date"` // Start time, UTC
	Location    string    `gorm:"size:255" json:"location"`
	ImageBase64 *string   `gorm:"column:image_base64;type:longtext" json:"image_base64"` // Optional inline image
	Status      string    `gorm:"size:16;index;not null;default:active" json:"status"`   // active or finished
	OrganizerID string    `gorm:"size:36;not null" json:"organizer_id"`                  // Admin who created the event
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
