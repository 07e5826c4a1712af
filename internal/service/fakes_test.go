package service

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/venue-layout-editor/internal/model"
	"github.com/iliyamo/venue-layout-editor/internal/queue"
	"github.com/iliyamo/venue-layout-editor/internal/repository"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory LayoutStore with injectable failures.
type memStore struct {
	mu      sync.Mutex
	next    uint64
	rows    map[uint64]model.Layout
	gets    int
	failAll bool
}

func newMemStore() *memStore { return &memStore{rows: map[uint64]model.Layout{}} }

func (s *memStore) Create(_ context.Context, l *model.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.next++
	l.ID = s.next
	s.rows[l.ID] = l.Clone()
	return nil
}

func (s *memStore) GetByIDAndOwner(_ context.Context, id, ownerID uint64) (*model.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.failAll {
		return nil, errStoreDown
	}
	l, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrLayoutNotFound
	}
	if l.OwnerID != ownerID {
		return nil, repository.ErrForbidden
	}
	cp := l.Clone()
	return &cp, nil
}

func (s *memStore) UpdateByIDAndOwner(_ context.Context, l *model.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	old, ok := s.rows[l.ID]
	if !ok {
		return repository.ErrLayoutNotFound
	}
	if old.OwnerID != l.OwnerID {
		return repository.ErrForbidden
	}
	s.rows[l.ID] = l.Clone()
	return nil
}

func (s *memStore) DeleteByIDAndOwner(_ context.Context, id, ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rows[id]
	if !ok {
		return repository.ErrLayoutNotFound
	}
	if l.OwnerID != ownerID {
		return repository.ErrForbidden
	}
	delete(s.rows, id)
	return nil
}

func (s *memStore) ListByOwner(_ context.Context, ownerID uint64, _ repository.ListFilter) ([]model.LayoutSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.LayoutSummary{}
	for _, l := range s.rows {
		if l.OwnerID == ownerID {
			out = append(out, model.LayoutSummary{ID: l.ID, OwnerID: l.OwnerID, Name: l.Name, ItemCount: len(l.Items)})
		}
	}
	return out, nil
}

// memCache is a map-backed LayoutCache.
type memCache struct {
	rows        map[uint64]model.Layout
	invalidated []uint64
}

func newMemCache() *memCache { return &memCache{rows: map[uint64]model.Layout{}} }

func (c *memCache) Get(_ context.Context, id uint64) (*model.Layout, bool) {
	l, ok := c.rows[id]
	if !ok {
		return nil, false
	}
	cp := l.Clone()
	return &cp, true
}

func (c *memCache) Set(_ context.Context, l *model.Layout) { c.rows[l.ID] = l.Clone() }

func (c *memCache) Invalidate(_ context.Context, id uint64) {
	delete(c.rows, id)
	c.invalidated = append(c.invalidated, id)
}

// recPublisher records published events and optionally fails.
type recPublisher struct {
	events []queue.LayoutEvent
	err    error
}

func (p *recPublisher) Publish(_ context.Context, ev queue.LayoutEvent) error {
	p.events = append(p.events, ev)
	return p.err
}
