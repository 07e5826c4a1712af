package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/venue-layout-editor/internal/editor"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// layoutBackend is what sessions need from the layout service.
type layoutBackend interface {
	Get(ctx context.Context, ownerID, id uint64) (*model.Layout, error)
	Create(ctx context.Context, ownerID uint64, l model.Layout) (*model.Layout, error)
	Update(ctx context.Context, ownerID, id uint64, l model.Layout) (*model.Layout, error)
}

type hostedSession struct {
	mu       sync.Mutex // serialises events for this session
	owner    uint64
	editor   *editor.Session
	lastUsed time.Time // guarded by SessionManager.mu
}

// SessionManager keeps editor sessions in memory keyed by a random id.
// Events for one session are applied one at a time; different sessions
// proceed in parallel.
type SessionManager struct {
	layouts layoutBackend
	opts    editor.Options
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*hostedSession
}

// NewSessionManager builds a manager. Sessions idle for longer than ttl
// are removed by Sweep.
func NewSessionManager(layouts layoutBackend, opts editor.Options, ttl time.Duration, log *slog.Logger) *SessionManager {
	if log == nil {
		log = slog.Default()
	}
	return &SessionManager{
		layouts:  layouts,
		opts:     opts,
		ttl:      ttl,
		log:      log.With("service", "sessions"),
		now:      time.Now,
		sessions: make(map[string]*hostedSession),
	}
}

// Open starts a session. layoutID 0 opens create mode on a fresh layout;
// otherwise the stored layout is loaded for editing.
func (m *SessionManager) Open(ctx context.Context, ownerID, layoutID uint64) (string, editor.State, error) {
	var initial *model.Layout
	if layoutID != 0 {
		l, err := m.layouts.Get(ctx, ownerID, layoutID)
		if err != nil {
			return "", editor.State{}, err
		}
		initial = l
	}
	hs := &hostedSession{owner: ownerID, editor: editor.NewSession(initial, m.opts)}
	sid := uuid.NewString()

	m.mu.Lock()
	hs.lastUsed = m.now()
	m.sessions[sid] = hs
	m.mu.Unlock()

	m.log.Info("session opened", "session_id", sid, "owner_id", ownerID, "layout_id", layoutID)
	return sid, hs.editor.State(), nil
}

// Dispatch applies one event and returns the transition with the
// resulting state. A rejected event leaves the session unchanged.
func (m *SessionManager) Dispatch(sid string, ownerID uint64, ev editor.Event) (editor.Transition, editor.State, error) {
	hs, err := m.lookup(sid, ownerID)
	if err != nil {
		return editor.Transition{}, editor.State{}, err
	}
	hs.mu.Lock()
	defer hs.mu.Unlock()

	tr, err := hs.editor.Dispatch(ev)
	if err != nil {
		m.log.Debug("event rejected", "session_id", sid, "err", err)
		return editor.Transition{}, editor.State{}, err
	}
	return tr, hs.editor.State(), nil
}

// State returns the session state.
func (m *SessionManager) State(sid string, ownerID uint64) (editor.State, error) {
	hs, err := m.lookup(sid, ownerID)
	if err != nil {
		return editor.State{}, err
	}
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.editor.State(), nil
}

// Frame renders the session for painting.
func (m *SessionManager) Frame(sid string, ownerID uint64) (editor.Frame, error) {
	hs, err := m.lookup(sid, ownerID)
	if err != nil {
		return editor.Frame{}, err
	}
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return editor.Render(hs.editor), nil
}

// Save persists the session's layout, creating it on first save. On
// failure the session keeps its state and dirty flag so the user can retry.
func (m *SessionManager) Save(ctx context.Context, sid string, ownerID uint64) (*model.Layout, error) {
	hs, err := m.lookup(sid, ownerID)
	if err != nil {
		return nil, err
	}
	hs.mu.Lock()
	defer hs.mu.Unlock()

	snap := hs.editor.Snapshot()
	var saved *model.Layout
	if hs.editor.IsNew() {
		saved, err = m.layouts.Create(ctx, ownerID, snap)
	} else {
		saved, err = m.layouts.Update(ctx, ownerID, snap.ID, snap)
	}
	if err != nil {
		m.log.Warn("session save failed", "session_id", sid, "err", err)
		return nil, err
	}
	hs.editor.MarkSaved(*saved)
	return saved, nil
}

// Cancel discards the session and its unsaved state.
func (m *SessionManager) Cancel(sid string, ownerID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hs, ok := m.sessions[sid]
	if !ok || hs.owner != ownerID {
		return ErrSessionNotFound
	}
	delete(m.sessions, sid)
	m.log.Info("session cancelled", "session_id", sid)
	return nil
}

// Sweep removes sessions idle since before now minus the idle TTL and
// returns how many were removed.
func (m *SessionManager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid, hs := range m.sessions {
		if hs.lastUsed.Before(cutoff) {
			delete(m.sessions, sid)
			n++
		}
	}
	if n > 0 {
		m.log.Info("idle sessions expired", "count", n)
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			m.Sweep(now)
		}
	}
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) lookup(sid string, ownerID uint64) (*hostedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hs, ok := m.sessions[sid]
	if !ok || hs.owner != ownerID {
		return nil, ErrSessionNotFound
	}
	hs.lastUsed = m.now()
	return hs, nil
}
