package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // Primary key generation
	"github.com/shopspring/decimal" // Credit balance
	"gorm.io/gorm"                  // Hooks
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model
type User struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`                         // Primary key (uuid)
	Email        string          `gorm:"uniqueIndex;size:255;not null" json:"email"`           // Unique, lower-cased email
	PasswordHash string          `gorm:"not null" json:"-"`                                    // Bcrypt hash
	Name         string          `gorm:"size:255;not null" json:"name"`                        // Display name
	Phone        *string         `gorm:"size:64" json:"phone"`                                 // Optional phone
	Role         string          `gorm:"size:16;not null;default:user" json:"role"`            // Role: user or admin
	Credits      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credits"` // Wallet balance
	CreatedAt    time.Time       `json:"created_at"`                                           // Registration time
}

// BeforeCreate assigns a uuid when none was set
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
