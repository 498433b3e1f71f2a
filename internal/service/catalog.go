package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching
	"time"    // Timestamps

	"eventpay/internal/apperr" // Error kinds
	"eventpay/internal/domain" // Importing domain models
	"eventpay/internal/store"  // Repositories
	"eventpay/internal/utils"  // Cache and code helpers

	"github.com/redis/go-redis/v9"   // Redis client
	log "github.com/sirupsen/logrus" // Structured logging
)

// CatalogService manages events and their products. Listings are cached in
// redis and dropped on every mutation.
type CatalogService struct {
	events   *store.EventStore
	products *store.ProductStore
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewCatalogService(st *store.Store, rdb *redis.Client, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{events: st.Events, products: st.Products, rdb: rdb, cacheTTL: cacheTTL}
}

// ListEvents returns events, optionally only those with the given status
func (s *CatalogService) ListEvents(ctx context.Context, status string) ([]domain.Event, error) {
	key := utils.EventsKey(status)
	var cached []domain.Event
	// Try cache first
	if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
		return cached, nil
	}
	list, err := s.events.List(ctx, status)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load events")
	}
	_ = utils.SetCache(ctx, s.rdb, key, list, s.cacheTTL)
	return list, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	e, err := s.events.ByID(ctx, id)
	if err != nil {
		return nil, eventErr(err)
	}
	return e, nil
}

// CreateEvent stores a new active event organized by the caller
func (s *CatalogService) CreateEvent(ctx context.Context, organizer *domain.User, fields store.EventFields) (*domain.Event, error) {
	e := &domain.Event{
		Name:        fields.Name,
		Description: fields.Description,
		Date:        fields.Date.UTC(), // Stored in UTC
		Location:    fields.Location,
		ImageBase64: fields.ImageBase64,
		Status:      domain.EventActive,
		OrganizerID: organizer.ID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, apperr.Wrap(err, "failed to create event")
	}
	s.dropEvents(ctx)
	log.WithFields(log.Fields{"event_id": e.ID, "organizer_id": organizer.ID}).Info("Event created")
	return e, nil
}

func (s *CatalogService) UpdateEvent(ctx context.Context, id string, fields store.EventFields) (*domain.Event, error) {
	fields.Date = fields.Date.UTC()
	e, err := s.events.Update(ctx, id, fields)
	if err != nil {
		return nil, eventErr(err)
	}
	s.dropEvents(ctx)
	return e, nil
}

func (s *CatalogService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return eventErr(err)
	}
	s.dropEvents(ctx)
	_ = utils.DeleteCache(ctx, s.rdb, utils.ProductsKey(id))
	log.WithField("event_id", id).Info("Event deleted")
	return nil
}

// FinishPastEvents marks active events dated before now as finished
func (s *CatalogService) FinishPastEvents(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.events.FinishPast(ctx, now.UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.dropEvents(ctx)
	}
	return n, nil
}

// ListProducts returns the products sold at an event
func (s *CatalogService) ListProducts(ctx context.Context, eventID string) ([]domain.Product, error) {
	key := utils.ProductsKey(eventID)
	var cached []domain.Product
	if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
		return cached, nil
	}
	list, err := s.products.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load products")
	}
	_ = utils.SetCache(ctx, s.rdb, key, list, s.cacheTTL)
	return list, nil
}

// CreateProduct adds an available product to an existing event
func (s *CatalogService) CreateProduct(ctx context.Context, eventID string, fields store.ProductFields) (*domain.Product, error) {
	// The event must exist
	if _, err := s.events.ByID(ctx, eventID); err != nil {
		return nil, eventErr(err)
	}
	p := &domain.Product{
		EventID:     eventID,
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		ImageBase64: fields.ImageBase64,
		Available:   true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apperr.Wrap(err, "failed to create product")
	}
	_ = utils.DeleteCache(ctx, s.rdb, utils.ProductsKey(eventID))
	log.WithFields(log.Fields{"product_id": p.ID, "event_id": eventID}).Info("Product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, fields store.ProductFields) (*domain.Product, error) {
	p, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return nil, productErr(err)
	}
	_ = utils.DeleteCache(ctx, s.rdb, utils.ProductsKey(p.EventID))
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.products.ByID(ctx, id)
	if err != nil {
		return productErr(err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return productErr(err)
	}
	_ = utils.DeleteCache(ctx, s.rdb, utils.ProductsKey(p.EventID))
	log.WithField("product_id", id).Info("Product deleted")
	return nil
}

func (s *CatalogService) dropEvents(ctx context.Context) {
	if err := utils.DeleteCachePrefix(ctx, s.rdb, utils.EventsKeyPrefix); err != nil {
		log.WithError(err).Warn("Failed to invalidate event listings")
	}
}

func eventErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NewNotFound("event not found")
	}
	return apperr.Wrap(err, "failed to access event")
}

func productErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NewNotFound("product not found")
	}
	return apperr.Wrap(err, "failed to access product")
}
