package service

import (
	"context"
	"testing"
	"time"

	"eventpay/internal/apperr"
	"eventpay/internal/domain"
	"eventpay/internal/store"
	"eventpay/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEventLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.st, f.rdb, time.Minute)
	ctx := context.Background()
	admin := f.user(t, "admin@example.com", domain.RoleAdmin, "0")

	list, err := svc.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, f.mr.Exists(utils.EventsKey("")))

	ev, err := svc.CreateEvent(ctx, admin, store.EventFields{Name: "Jazz Night", Date: time.Now().Add(48 * time.Hour), Location: "Pier 4"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventActive, ev.Status)
	assert.Equal(t, admin.ID, ev.OrganizerID)
	assert.False(t, f.mr.Exists(utils.EventsKey("")))

	list, err = svc.ListEvents(ctx, domain.EventActive)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.UpdateEvent(ctx, ev.ID, store.EventFields{Name: "Jazz Night II", Date: ev.Date, Location: "Pier 5"})
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night II", updated.Name)

	require.NoError(t, svc.DeleteEvent(ctx, ev.ID))
	_, err = svc.GetEvent(ctx, ev.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	assert.True(t, apperr.Is(svc.DeleteEvent(ctx, ev.ID), apperr.NotFound))
}

func TestCatalogFinishPastEvents(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.st, f.rdb, time.Minute)
	ctx := context.Background()
	admin := f.user(t, "admin@example.com", domain.RoleAdmin, "0")

	now := time.Now().UTC()
	past, err := svc.CreateEvent(ctx, admin, store.EventFields{Name: "Yesterday", Date: now.Add(-24 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, admin, store.EventFields{Name: "Tomorrow", Date: now.Add(24 * time.Hour)})
	require.NoError(t, err)

	n, err := svc.FinishPastEvents(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := svc.GetEvent(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventFinished, got.Status)

	n, err = svc.FinishPastEvents(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogProducts(t *testing.T) {
	f := newFixture(t)
	svc := NewCatalogService(f.st, f.rdb, time.Minute)
	ctx := context.Background()
	ev := f.event(t, "Rock Fest")

	_, err := svc.CreateProduct(ctx, "missing", store.ProductFields{Name: "Beer", Price: dec("8"), Stock: 1})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.ListProducts(ctx, ev.ID)
	require.NoError(t, err)
	require.True(t, f.mr.Exists(utils.ProductsKey(ev.ID)))

	p, err := svc.CreateProduct(ctx, ev.ID, store.ProductFields{Name: "Beer", Price: dec("8.50"), Stock: 100})
	require.NoError(t, err)
	assert.True(t, p.Available)
	assert.False(t, f.mr.Exists(utils.ProductsKey(ev.ID)))

	list, err := svc.ListProducts(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assertDec(t, "8.50", list[0].Price)

	p, err = svc.UpdateProduct(ctx, p.ID, store.ProductFields{Name: "Craft Beer", Price: dec("9.00"), Stock: 80})
	require.NoError(t, err)
	assert.Equal(t, "Craft Beer", p.Name)
	assert.False(t, f.mr.Exists(utils.ProductsKey(ev.ID)))

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.True(t, apperr.Is(svc.DeleteProduct(ctx, p.ID), apperr.NotFound))
	_, err = svc.UpdateProduct(ctx, p.ID, store.ProductFields{Name: "x"})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestOrderSnapshotsSurviveCatalogEdits(t *testing.T) {
	s := newOrderScene(t)
	catalog := NewCatalogService(s.st, s.rdb, time.Minute)
	ctx := context.Background()
	buyer := s.user(t, "pa@example.com", domain.RoleUser, "0")

	order, err := s.svc.Place(ctx, buyer, s.input("0"))
	require.NoError(t, err)

	_, err = catalog.UpdateProduct(ctx, s.beer.ID, store.ProductFields{Name: "Renamed", Price: dec("99"), Stock: 1})
	require.NoError(t, err)
	_, err = catalog.UpdateEvent(ctx, s.event.ID, store.EventFields{Name: "Renamed Fest", Date: s.event.Date})
	require.NoError(t, err)

	got, err := s.svc.Get(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Fest", got.EventName)
	for _, it := range got.Items {
		if it.ProductID == s.beer.ID {
			assert.Equal(t, "Beer", it.ProductName)
			assertDec(t, "8.50", it.UnitPrice)
		}
	}
}
