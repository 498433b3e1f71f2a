package service

import (
	"context"
	"testing"
	"time"

	"eventpay/internal/domain"
	"eventpay/internal/events"
	"eventpay/internal/store"
	"eventpay/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg events.Message) error {
	return m.Called(msg.Type, msg.OrderID).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type fixture struct {
	db  *gorm.DB
	st  *store.Store
	rdb *redis.Client
	mr  *miniredis.Miniredis
	pub *mockPublisher
}

func newFixture(t *testing.T) *fixture {
	rdb, mr := testutil.NewRedis(t)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	db := testutil.NewDB(t)
	return &fixture{db: db, st: store.New(db), rdb: rdb, mr: mr, pub: pub}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) user(t *testing.T, email, role, credits string) *domain.User {
	u := &domain.User{Email: email, PasswordHash: "x", Name: email, Role: role, Credits: dec(credits)}
	require.NoError(t, f.st.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) event(t *testing.T, name string) *domain.Event {
	e := &domain.Event{Name: name, Date: time.Now().UTC().Add(24 * time.Hour), Status: domain.EventActive, OrganizerID: "admin"}
	require.NoError(t, f.st.Events.Create(context.Background(), e))
	return e
}

func (f *fixture) product(t *testing.T, eventID, name, price string, stock int) *domain.Product {
	p := &domain.Product{EventID: eventID, Name: name, Price: dec(price), Stock: stock, Available: true}
	require.NoError(t, f.st.Products.Create(context.Background(), p))
	return p
}
