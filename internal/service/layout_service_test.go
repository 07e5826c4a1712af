package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-layout-editor/internal/model"
	"github.com/iliyamo/venue-layout-editor/internal/queue"
	"github.com/iliyamo/venue-layout-editor/internal/repository"
)

func newTestService() (*LayoutService, *memStore, *memCache, *recPublisher) {
	store, cache, pub := newMemStore(), newMemCache(), &recPublisher{}
	svc := NewLayoutService(store, cache, pub, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, cache, pub
}

func validLayout(name string) model.Layout {
	return model.Layout{
		Name:       name,
		CanvasW:    1200,
		CanvasH:    800,
		IsActive:   true,
		Categories: model.DefaultCategories(),
		Items: []model.LayoutItem{
			{ID: "s1", Type: model.ItemSeat, W: 30, H: 30, CategoryID: "standard"},
			{ID: "b1", Type: model.ItemBooth, X: 100, W: 100, H: 60},
		},
	}
}

func TestLayoutService_Create(t *testing.T) {
	svc, store, cache, pub := newTestService()

	l, err := svc.Create(context.Background(), 3, validLayout("  Main Hall  "))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), l.ID)
	assert.Equal(t, uint64(3), l.OwnerID)
	assert.Equal(t, "Main Hall", l.Name)
	assert.Contains(t, store.rows, uint64(1))
	assert.Contains(t, cache.rows, uint64(1))

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, queue.ActionCreated, ev.Action)
	assert.Equal(t, 2, ev.ItemCount)
	assert.Equal(t, 1, ev.SeatCount)
	assert.Equal(t, "2026-03-01T12:00:00Z", ev.OccurredAt)
}

func TestLayoutService_CreateValidation(t *testing.T) {
	svc, store, _, pub := newTestService()

	cases := map[string]func(*model.Layout){
		"blank name":       func(l *model.Layout) { l.Name = "   " },
		"canvas too big":   func(l *model.Layout) { l.CanvasW = 6000 },
		"canvas too small": func(l *model.Layout) { l.CanvasH = 50 },
		"duplicate ids":    func(l *model.Layout) { l.Items[1].ID = "s1" },
		"zero width item":  func(l *model.Layout) { l.Items[0].W = 0 },
		"rotation 360":     func(l *model.Layout) { l.Items[1].Rotation = 360 },
		"label too long":   func(l *model.Layout) { l.Items[0].Label = strings.Repeat("x", model.MaxLabelLen+1) },
		"item id too long": func(l *model.Layout) { l.Items[0].ID = strings.Repeat("i", model.MaxIDLen+1) },
		"bad category":     func(l *model.Layout) { l.Categories[0].Color = "blue" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			l := validLayout("Main")
			mutate(&l)
			_, err := svc.Create(context.Background(), 3, l)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
	assert.Empty(t, store.rows)
	assert.Empty(t, pub.events)
}

func TestLayoutService_CreateStoreFailure(t *testing.T) {
	svc, store, _, pub := newTestService()
	store.failAll = true

	_, err := svc.Create(context.Background(), 3, validLayout("Main"))
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, pub.events)
}

func TestLayoutService_GetUsesCache(t *testing.T) {
	svc, store, _, _ := newTestService()
	created, err := svc.Create(context.Background(), 3, validLayout("Main"))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 3, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", got.Name)
	assert.Equal(t, 0, store.gets)

	_, err = svc.Get(context.Background(), 4, created.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestLayoutService_GetMissFillsCache(t *testing.T) {
	svc, store, cache, _ := newTestService()
	require.NoError(t, store.Create(context.Background(), &model.Layout{OwnerID: 3, Name: "Stored", CanvasW: 500, CanvasH: 500}))

	got, err := svc.Get(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "Stored", got.Name)
	assert.Equal(t, 1, store.gets)
	assert.Contains(t, cache.rows, uint64(1))

	_, err = svc.Get(context.Background(), 3, 99)
	assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestLayoutService_UpdateInvalidatesCache(t *testing.T) {
	svc, store, cache, pub := newTestService()
	created, err := svc.Create(context.Background(), 3, validLayout("Main"))
	require.NoError(t, err)

	l := created.Clone()
	l.Name = "Renamed"
	l.Items = l.Items[:1]
	updated, err := svc.Update(context.Background(), 3, created.ID, l)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Renamed", store.rows[created.ID].Name)
	assert.NotContains(t, cache.rows, created.ID)
	assert.Equal(t, []uint64{created.ID}, cache.invalidated)
	assert.Equal(t, queue.ActionUpdated, pub.events[len(pub.events)-1].Action)

	_, err = svc.Update(context.Background(), 4, created.ID, l)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestLayoutService_Duplicate(t *testing.T) {
	svc, _, _, pub := newTestService()
	src, err := svc.Create(context.Background(), 3, validLayout("Main"))
	require.NoError(t, err)

	cp, err := svc.Duplicate(context.Background(), 3, src.ID, "")
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, "Main (Copy)", cp.Name)
	assert.Equal(t, src.Categories, cp.Categories)
	require.Len(t, cp.Items, len(src.Items))
	for i := range cp.Items {
		assert.NotEqual(t, src.Items[i].ID, cp.Items[i].ID)
		assert.Equal(t, src.Items[i].X, cp.Items[i].X)
	}

	named, err := svc.Duplicate(context.Background(), 3, src.ID, " Balcony ")
	require.NoError(t, err)
	assert.Equal(t, "Balcony", named.Name)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, queue.ActionDuplicated, last.Action)
	assert.Equal(t, src.ID, last.SourceID)
}

func TestLayoutService_Delete(t *testing.T) {
	svc, store, cache, pub := newTestService()
	created, err := svc.Create(context.Background(), 3, validLayout("Main"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 4, created.ID), repository.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), 3, created.ID))
	assert.Empty(t, store.rows)
	assert.NotContains(t, cache.rows, created.ID)
	assert.Equal(t, queue.ActionDeleted, pub.events[len(pub.events)-1].Action)

	assert.ErrorIs(t, svc.Delete(context.Background(), 3, created.ID), repository.ErrLayoutNotFound)
}

func TestLayoutService_PublishFailureIsIgnored(t *testing.T) {
	svc, _, _, pub := newTestService()
	pub.err = errors.New("broker down")

	_, err := svc.Create(context.Background(), 3, validLayout("Main"))
	assert.NoError(t, err)
}

func TestLayoutService_NilCollaborators(t *testing.T) {
	svc := NewLayoutService(newMemStore(), nil, nil, nil)
	created, err := svc.Create(context.Background(), 3, validLayout("Main"))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 3, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", got.Name)

	list, err := svc.List(context.Background(), 3, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
