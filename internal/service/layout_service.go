package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/venue-layout-editor/internal/editor"
	"github.com/iliyamo/venue-layout-editor/internal/model"
	"github.com/iliyamo/venue-layout-editor/internal/queue"
	"github.com/iliyamo/venue-layout-editor/internal/repository"
)

const publishTimeout = 3 * time.Second

// LayoutStore is the persistence boundary. repository.LayoutRepo
// implements it.
type LayoutStore interface {
	Create(ctx context.Context, l *model.Layout) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Layout, error)
	UpdateByIDAndOwner(ctx context.Context, l *model.Layout) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
	ListByOwner(ctx context.Context, ownerID uint64, f repository.ListFilter) ([]model.LayoutSummary, error)
}

// LayoutCache keeps loaded layouts. Implementations swallow their own
// errors; cache.LayoutCache implements it.
type LayoutCache interface {
	Get(ctx context.Context, id uint64) (*model.Layout, bool)
	Set(ctx context.Context, l *model.Layout)
	Invalidate(ctx context.Context, id uint64)
}

// EventPublisher announces layout writes. queue.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.LayoutEvent) error
}

// LayoutService validates layouts and persists them for a single owner at
// a time. Cache and publisher may be nil.
type LayoutService struct {
	store  LayoutStore
	cache  LayoutCache
	events EventPublisher
	ids    editor.IDGenerator
	log    *slog.Logger
	now    func() time.Time
}

// NewLayoutService wires the service.
func NewLayoutService(store LayoutStore, cache LayoutCache, events EventPublisher, log *slog.Logger) *LayoutService {
	if log == nil {
		log = slog.Default()
	}
	return &LayoutService{
		store:  store,
		cache:  cache,
		events: events,
		ids:    editor.UUIDGenerator{},
		log:    log.With("service", "layout"),
		now:    time.Now,
	}
}

// Create validates and stores a new layout owned by ownerID.
func (s *LayoutService) Create(ctx context.Context, ownerID uint64, l model.Layout) (*model.Layout, error) {
	l = normalize(l)
	l.ID = 0
	l.OwnerID = ownerID
	if err := model.ValidateLayout(l); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &l); err != nil {
		s.log.Error("create layout failed", "owner_id", ownerID, "err", err)
		return nil, persistErr("create", err)
	}
	s.log.Info("layout created", "layout_id", l.ID, "owner_id", ownerID, "items", len(l.Items))
	s.setCache(ctx, &l)
	s.publish(ctx, queue.ActionCreated, &l, 0)
	return &l, nil
}

// Get loads a layout, from cache when possible.
func (s *LayoutService) Get(ctx context.Context, ownerID, id uint64) (*model.Layout, error) {
	if s.cache != nil {
		if l, ok := s.cache.Get(ctx, id); ok {
			if l.OwnerID != ownerID {
				return nil, persistErr("load", repository.ErrForbidden)
			}
			return l, nil
		}
	}
	l, err := s.store.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, persistErr("load", err)
	}
	s.setCache(ctx, l)
	return l, nil
}

// Update overwrites layout id with l.
func (s *LayoutService) Update(ctx context.Context, ownerID, id uint64, l model.Layout) (*model.Layout, error) {
	l = normalize(l)
	l.ID = id
	l.OwnerID = ownerID
	if err := model.ValidateLayout(l); err != nil {
		return nil, err
	}
	if err := s.store.UpdateByIDAndOwner(ctx, &l); err != nil {
		s.log.Error("update layout failed", "layout_id", id, "owner_id", ownerID, "err", err)
		return nil, persistErr("update", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.log.Info("layout updated", "layout_id", id, "owner_id", ownerID, "items", len(l.Items))
	s.publish(ctx, queue.ActionUpdated, &l, 0)
	return &l, nil
}

// Duplicate stores a copy of layout id with fresh item ids. An empty
// newName yields "<name> (Copy)".
func (s *LayoutService) Duplicate(ctx context.Context, ownerID, id uint64, newName string) (*model.Layout, error) {
	src, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	cp := src.Clone()
	cp.ID = 0
	cp.Name = strings.TrimSpace(newName)
	if cp.Name == "" {
		cp.Name = src.Name + " (Copy)"
	}
	cp.Items = editor.ReassignIDs(s.ids, cp.Items)
	if err := model.ValidateLayout(cp); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &cp); err != nil {
		s.log.Error("duplicate layout failed", "layout_id", id, "owner_id", ownerID, "err", err)
		return nil, persistErr("duplicate", err)
	}
	s.log.Info("layout duplicated", "layout_id", cp.ID, "source_id", id, "owner_id", ownerID)
	s.setCache(ctx, &cp)
	s.publish(ctx, queue.ActionDuplicated, &cp, id)
	return &cp, nil
}

// Delete removes layout id.
func (s *LayoutService) Delete(ctx context.Context, ownerID, id uint64) error {
	if err := s.store.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		return persistErr("delete", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.log.Info("layout deleted", "layout_id", id, "owner_id", ownerID)
	s.publish(ctx, queue.ActionDeleted, &model.Layout{ID: id, OwnerID: ownerID}, 0)
	return nil
}

// List returns the owner's layouts matching f.
func (s *LayoutService) List(ctx context.Context, ownerID uint64, f repository.ListFilter) ([]model.LayoutSummary, error) {
	out, err := s.store.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, persistErr("list", err)
	}
	return out, nil
}

func (s *LayoutService) setCache(ctx context.Context, l *model.Layout) {
	if s.cache != nil {
		s.cache.Set(ctx, l)
	}
}

// publish sends the event synchronously with its own timeout. Failures are
// logged only; the write already succeeded.
func (s *LayoutService) publish(ctx context.Context, action string, l *model.Layout, sourceID uint64) {
	if s.events == nil {
		return
	}
	ev := queue.LayoutEvent{
		Action:     action,
		LayoutID:   l.ID,
		OwnerID:    l.OwnerID,
		Name:       l.Name,
		ItemCount:  len(l.Items),
		SeatCount:  l.SeatCount(),
		SourceID:   sourceID,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pctx, ev); err != nil {
		s.log.Warn("publish layout event failed", "action", action, "layout_id", l.ID, "err", err)
	}
}

// normalize trims the name and makes nil collections empty so stored and
// returned layouts always carry [] rather than null.
func normalize(l model.Layout) model.Layout {
	l = l.Clone()
	l.Name = strings.TrimSpace(l.Name)
	return l
}
