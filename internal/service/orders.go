package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching
	"fmt"     // Error formatting
	"time"    // Timestamps

	"eventpay/internal/apperr"  // Error kinds
	"eventpay/internal/domain"  // Importing domain models
	"eventpay/internal/events"  // Order event publishing
	"eventpay/internal/pricing" // Quote calculation
	"eventpay/internal/store"   // Repositories
	"eventpay/internal/utils"   // Cache and code helpers

	"github.com/redis/go-redis/v9"   // Redis client
	"github.com/shopspring/decimal"  // Money amounts
	log "github.com/sirupsen/logrus" // Structured logging
)

// codeAttempts bounds retries when a generated redemption code is already taken
const codeAttempts = 3

// OrderLine is a line item as submitted by the buyer. Name and price are
// trusted as sent; they are not re-read from the catalog.
type OrderLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// PlaceOrderInput is a purchase request
type PlaceOrderInput struct {
	EventID    string
	Items      []OrderLine
	UseCredits decimal.Decimal
}

// Report aggregates every paid order
type Report struct {
	TotalOrders     int             `json:"total_orders"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	PlatformFees    decimal.Decimal `json:"platform_fees"`
	OrganizerAmount decimal.Decimal `json:"organizer_amount"`
}

// OrderService prices, settles, redeems and reports on orders
type OrderService struct {
	events    *store.EventStore
	products  *store.ProductStore
	orders    *store.OrderStore
	users     *store.UserStore
	credits   *store.CreditStore
	publisher events.Publisher
	rdb       *redis.Client
	cacheTTL  time.Duration

	newCode func() string
	now     func() time.Time
}

func NewOrderService(st *store.Store, pub events.Publisher, rdb *redis.Client, cacheTTL time.Duration) *OrderService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &OrderService{
		events:    st.Events,
		products:  st.Products,
		orders:    st.Orders,
		users:     st.Users,
		credits:   st.Credits,
		publisher: pub,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		newCode:   utils.NewRedemptionCode,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Place prices the order against the buyer's balance as loaded for this
// request, persists it and then applies the wallet debit and stock decrements.
// The side effects are independent single-row updates: a failure part way
// through leaves the earlier effects in place.
func (s *OrderService) Place(ctx context.Context, buyer *domain.User, in PlaceOrderInput) (*domain.Order, error) {
	// Convert request lines for the pricing engine
	lines := make([]pricing.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = pricing.Line{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	if err := pricing.ValidateLines(lines, in.UseCredits); err != nil {
		return nil, err
	}

	event, err := s.events.ByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NewNotFound("event not found")
		}
		return nil, apperr.Wrap(err, "failed to load event")
	}

	quote := pricing.Quote(lines, in.UseCredits, buyer.Credits) // Balance as loaded for this request

	// Snapshot names and prices as submitted
	items := make([]domain.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	order := &domain.Order{
		UserID:          buyer.ID,
		EventID:         event.ID,
		EventName:       event.Name,
		Items:           items,
		Subtotal:        quote.Subtotal,
		PlatformFee:     quote.PlatformFee,
		CreditsUsed:     quote.CreditsUsed,
		Total:           quote.Total,
		OrganizerAmount: quote.OrganizerAmount,
		PaymentStatus:   domain.PaymentPaid,
		Status:          domain.OrderPending,
		CreatedAt:       s.now(),
	}
	if err := s.create(ctx, order); err != nil {
		return nil, err
	}

	fields := log.Fields{
		"order_id":     order.ID,
		"user_id":      buyer.ID,
		"event_id":     event.ID,
		"subtotal":     quote.Subtotal.String(),
		"platform_fee": quote.PlatformFee.String(),
		"credits_used": quote.CreditsUsed.String(),
		"total":        quote.Total.String(),
	}
	log.WithFields(fields).Info("Order placed")

	if err := s.settle(ctx, order); err != nil {
		// The order row exists and may already have debited the wallet
		s.dropCaches(ctx, event.ID)
		log.WithFields(fields).WithField("qr_code", order.QRCode).WithError(err).Error("Order settlement incomplete")
		return nil, apperr.Wrap(err, fmt.Sprintf("order %s (%s) was created but settlement failed", order.ID, order.QRCode))
	}

	s.dropCaches(ctx, event.ID)
	s.publish(ctx, events.OrderPlaced, order)
	return order, nil
}

// dropCaches forgets the report and the event's product listing, whose stock changed
func (s *OrderService) dropCaches(ctx context.Context, eventID string) {
	if err := utils.DeleteCache(ctx, s.rdb, utils.ReportsKey, utils.ProductsKey(eventID)); err != nil {
		log.WithField("event_id", eventID).WithError(err).Warn("Failed to invalidate order caches")
	}
}

func (s *OrderService) create(ctx context.Context, order *domain.Order) error {
	var err error
	for i := 0; i < codeAttempts; i++ {
		order.ID = ""              // Let BeforeCreate assign a fresh id
		order.QRCode = s.newCode() // New code on every attempt
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, store.ErrDuplicate) {
			break
		}
		log.WithField("qr_code", order.QRCode).Warn("Redemption code collision, regenerating")
	}
	if err != nil {
		return apperr.Wrap(err, "failed to create order")
	}
	return nil
}

// settle debits the wallet and decrements stock for a persisted order
func (s *OrderService) settle(ctx context.Context, order *domain.Order) error {
	// Wallet debit first, then stock
	if order.CreditsUsed.IsPositive() {
		if err := s.users.AdjustCredits(ctx, order.UserID, order.CreditsUsed.Neg()); err != nil {
			return err
		}
		orderID := order.ID
		tx := &domain.CreditTransaction{
			UserID:  order.UserID,
			Amount:  order.CreditsUsed.Neg(),
			Type:    domain.CreditOrderPayment,
			OrderID: &orderID,
		}
		if err := s.credits.Append(ctx, tx); err != nil {
			log.WithField("order_id", order.ID).WithError(err).Error("Failed to record credit transaction")
		}
	}
	for _, it := range order.Items {
		err := s.products.DecrementStock(ctx, it.ProductID, it.Quantity)
		if errors.Is(err, store.ErrNotFound) {
			log.WithFields(log.Fields{"order_id": order.ID, "product_id": it.ProductID}).Warn("Ordered product not in catalog, stock untouched")
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListMine returns the user's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load orders")
	}
	return orders, nil
}

// ListAll returns every order, newest first
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load orders")
	}
	return orders, nil
}

// Get returns an order visible to the requester: its owner or an admin
func (s *OrderService) Get(ctx context.Context, requester *domain.User, id string) (*domain.Order, error) {
	order, err := s.load(ctx, s.orders.ByID, id, "order not found")
	if err != nil {
		return nil, err
	}
	// Owner or admin only
	if order.UserID != requester.ID && !requester.IsAdmin() {
		return nil, apperr.NewForbidden("access denied")
	}
	return order, nil
}

// ValidateByID redeems an order by its identifier. A second redemption is a conflict.
func (s *OrderService) ValidateByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.load(ctx, s.orders.ByID, id, "order not found")
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderValidated {
		return nil, apperr.NewConflict("order already validated")
	}
	ok, err := s.markValidated(ctx, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewConflict("order already validated")
	}
	return order, nil
}

// ValidateByCode redeems an order by its redemption code. Redeeming an already
// validated code is not an error: the order is returned unchanged with
// alreadyValidated set.
func (s *OrderService) ValidateByCode(ctx context.Context, code string) (order *domain.Order, alreadyValidated bool, err error) {
	order, err = s.load(ctx, s.orders.ByCode, code, "invalid QR code")
	if err != nil {
		return nil, false, err
	}
	if order.Status == domain.OrderValidated {
		return order, true, nil // Not re-stamped
	}
	ok, err := s.markValidated(ctx, order)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		// lost a race with another validation; report what is stored now
		current, err := s.load(ctx, s.orders.ByID, order.ID, "order not found")
		if err != nil {
			return nil, false, err
		}
		return current, true, nil
	}
	return order, false, nil
}

func (s *OrderService) markValidated(ctx context.Context, order *domain.Order) (bool, error) {
	at := s.now()
	ok, err := s.orders.MarkValidated(ctx, order.ID, at)
	if err != nil {
		return false, apperr.Wrap(err, "failed to validate order")
	}
	if !ok {
		return false, nil
	}
	order.Status = domain.OrderValidated
	order.ValidatedAt = &at
	log.WithFields(log.Fields{"order_id": order.ID, "user_id": order.UserID}).Info("Order validated")
	s.publish(ctx, events.OrderValidated, order)
	return true, nil
}

// Report folds every paid order into sales totals
func (s *OrderService) Report(ctx context.Context) (*Report, error) {
	var cached Report
	// Try cache first
	if found, err := utils.GetCache(ctx, s.rdb, utils.ReportsKey, &cached); err == nil && found {
		return &cached, nil
	}
	orders, err := s.orders.ListPaid(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load orders")
	}
	r := &Report{
		TotalOrders:     len(orders),
		TotalSales:      decimal.Zero,
		PlatformFees:    decimal.Zero,
		OrganizerAmount: decimal.Zero,
	}
	for _, o := range orders {
		r.TotalSales = r.TotalSales.Add(o.Total)
		r.PlatformFees = r.PlatformFees.Add(o.PlatformFee)
		r.OrganizerAmount = r.OrganizerAmount.Add(o.OrganizerAmount)
	}
	_ = utils.SetCache(ctx, s.rdb, utils.ReportsKey, r, s.cacheTTL) // Dropped on every placement
	return r, nil
}

func (s *OrderService) load(ctx context.Context, find func(context.Context, string) (*domain.Order, error), key, notFound string) (*domain.Order, error) {
	order, err := find(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NewNotFound(notFound)
		}
		return nil, apperr.Wrap(err, "failed to load order")
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, kind string, order *domain.Order) {
	if err := s.publisher.Publish(ctx, events.NewOrderMessage(kind, order)); err != nil {
		log.WithFields(log.Fields{"order_id": order.ID, "type": kind}).WithError(err).Warn("Failed to publish order event")
	}
}
