package db

import (
	"eventpay/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table the service owns, in creation order
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Event{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.CreditTransaction{},
	}
}

// Open connects to MySQL with duplicate-key errors translated to gorm.ErrDuplicatedKey
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
