package store

import (
	"context" // Request-scoped cancellation
	"time"    // Timestamps

	"eventpay/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// EventStore persists events
type EventStore struct {
	db *gorm.DB
}

// List returns events ordered by date, optionally filtered by status
func (s *EventStore) List(ctx context.Context, status string) ([]domain.Event, error) {
	q := s.db.WithContext(ctx).Model(&domain.Event{})
	if status != "" {
		q = q.Where("status = ?", status) // Optional status filter
	}
	var events []domain.Event
	if err := q.Order("date asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventStore) ByID(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *EventStore) Create(ctx context.Context, e *domain.Event) error {
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

// Update overwrites the editable fields of the event with the given id
func (s *EventStore) Update(ctx context.Context, id string, fields EventFields) (*domain.Event, error) {
	e, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Status and organizer are not editable
	err = s.db.WithContext(ctx).Model(e).Select("name", "description", "date", "location", "image_base64").
		Updates(domain.Event{
			Name:        fields.Name,
			Description: fields.Description,
			Date:        fields.Date,
			Location:    fields.Location,
			ImageBase64: fields.ImageBase64,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FinishPast marks active events dated before cutoff as finished
func (s *EventStore) FinishPast(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&domain.Event{}).
		Where("status = ? AND date < ?", domain.EventActive, cutoff).
		UpdateColumn("status", domain.EventFinished)
	return res.RowsAffected, res.Error
}

// EventFields are the admin-editable attributes of an event
type EventFields struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
	ImageBase64 *string
}
