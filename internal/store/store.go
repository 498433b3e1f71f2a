// Package store holds the gorm-backed repositories. Every balance and stock
// change is a single atomic arithmetic update on one row; nothing here opens a
// transaction spanning several rows.
package store

import (
	"errors" // Sentinel matching

	"gorm.io/gorm" // GORM ORM library
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects an insert
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm sentinels onto the store's own
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Store groups the repositories over one connection
type Store struct {
	Users    *UserStore
	Events   *EventStore
	Products *ProductStore
	Orders   *OrderStore
	Credits  *CreditStore
}

// New builds every repository on db
func New(db *gorm.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Events:   &EventStore{db: db},
		Products: &ProductStore{db: db},
		Orders:   &OrderStore{db: db},
		Credits:  &CreditStore{db: db},
	}
}
