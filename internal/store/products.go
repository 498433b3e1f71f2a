package store

import (
	"context" // Request-scoped cancellation

	"eventpay/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Money amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// ProductStore persists products and their stock
type ProductStore struct {
	db *gorm.DB
}

func (s *ProductStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at asc").Find(&products).Error // Oldest first
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStore) ByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

// Update overwrites the editable fields of the product with the given id.
// Availability is only written when fields.Available is set.
func (s *ProductStore) Update(ctx context.Context, id string, fields ProductFields) (*domain.Product, error) {
	p, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	columns := []any{"description", "price", "stock", "image_base64"}
	values := domain.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		ImageBase64: fields.ImageBase64,
	}
	if fields.Available != nil {
		columns = append(columns, "available")
		values.Available = *fields.Available
	}
	// Select forces zero values (stock 0, available false) to be written
	err = s.db.WithContext(ctx).Model(p).Select("name", columns...).Updates(values).Error
	if err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock atomically subtracts qty from the stock. There is no floor.
func (s *ProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	res := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty)) // No floor check
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProductFields are the admin-editable attributes of a product
type ProductFields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageBase64 *string
	Available   *bool // nil leaves availability unchanged
}
