package editor

import (
	"fmt"
	"strings"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// Surface names a transient UI surface a transition asks the client to open.
type Surface string

const (
	SurfaceNone        Surface = ""
	SurfaceContextMenu Surface = "context-menu"
	SurfaceBulkConfig  Surface = "bulk-config"
)

// Options configures a new Session.  Zero values fall back to defaults.
type Options struct {
	Grid           GridSettings
	HistoryLimit   int
	IDs            IDGenerator
	DefaultCanvasW int
	DefaultCanvasH int
}

// Transition summarises what one Dispatch changed so the caller knows
// what to repaint and whether the layout became dirty.
type Transition struct {
	ItemsChanged     bool                    `json:"itemsChanged"`
	Committed        bool                    `json:"committed"`
	SelectionChanged bool                    `json:"selectionChanged"`
	MarqueeChanged   bool                    `json:"marqueeChanged"`
	ViewChanged      bool                    `json:"viewChanged"`
	MetaChanged      bool                    `json:"metaChanged"`
	Surface          Surface                 `json:"surface,omitempty"`
	Anchor           *geometry.Point         `json:"anchor,omitempty"`
	Created          []string                `json:"created,omitempty"`
	Warning          *model.IntegrityWarning `json:"warning,omitempty"`
}

// Session is one editing session: the layout being edited together with
// selection, tool, viewport, grid and history.  A Session is not safe for
// concurrent use; callers serialise Dispatch.
type Session struct {
	layout    model.Layout // meta and categories; items live in items
	items     []model.LayoutItem
	selection SelectionState
	tool      Tool
	viewport  Viewport
	grid      GridSettings
	history   *History
	clipboard []model.LayoutItem
	bulkAt    *geometry.Point // pending bulk placement, world units
	ids       IDGenerator
	dirty     bool
}

// NewSession opens an editor on initial (edit mode) or, when initial is
// nil, on a fresh unnamed layout with the default categories (create mode).
func NewSession(initial *model.Layout, opts Options) *Session {
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	if opts.Grid.Size <= 0 {
		opts.Grid = DefaultGrid()
	}
	if !model.CanvasSizeValid(opts.DefaultCanvasW) {
		opts.DefaultCanvasW = 1200
	}
	if !model.CanvasSizeValid(opts.DefaultCanvasH) {
		opts.DefaultCanvasH = 800
	}

	var l model.Layout
	if initial != nil {
		l = initial.Clone()
	} else {
		l = model.Layout{
			CanvasW:    opts.DefaultCanvasW,
			CanvasH:    opts.DefaultCanvasH,
			Categories: model.DefaultCategories(),
			IsActive:   true,
		}
	}
	items := model.CloneItems(l.Items)
	l.Items = nil

	return &Session{
		layout:    l,
		items:     items,
		selection: NewSelectionState(),
		tool:      ToolSelect,
		viewport:  DefaultViewport(),
		grid:      opts.Grid,
		history:   NewHistory(items, opts.HistoryLimit),
		ids:       opts.IDs,
	}
}

// Dispatch applies one event.  On error the session is left unchanged.
func (s *Session) Dispatch(ev Event) (Transition, error) {
	switch e := ev.(type) {
	case PointerDownEvent:
		return s.pointerDown(e), nil
	case PointerMoveEvent:
		return s.pointerMove(e), nil
	case PointerUpEvent:
		return s.pointerUp(e), nil
	case ContextMenuEvent:
		return s.contextMenu(e), nil
	case WheelEvent:
		return s.wheel(e), nil
	case KeyDownEvent:
		action, ok := ShortcutFor(e)
		if !ok {
			return Transition{}, nil
		}
		return s.Dispatch(action)
	case DragEndEvent:
		return s.dragEnd(e), nil
	case TransformEndEvent:
		if s.tool != ToolSelect {
			return Transition{}, nil
		}
		items, ok := ApplyTransformEnd(s.items, e.Nodes, s.grid)
		return s.commitIf(items, ok), nil
	case SelectToolEvent:
		return s.selectTool(e.Tool)
	case ConfirmBulkEvent:
		return s.confirmBulk(e.Config)
	case CancelBulkEvent:
		s.bulkAt = nil
		return Transition{}, nil
	case EditPropertyEvent:
		items, ok, err := ApplyProperty(s.items, s.selection.Selected, e.Change)
		if err != nil {
			return Transition{}, err
		}
		return s.commitIf(items, ok), nil
	case AlignEvent:
		items, ok, err := Align(s.items, s.selection.Selected, e.Mode)
		if err != nil {
			return Transition{}, err
		}
		return s.commitIf(items, ok), nil
	case DistributeEvent:
		items, ok, err := Distribute(s.items, s.selection.Selected, e.Axis)
		if err != nil {
			return Transition{}, err
		}
		return s.commitIf(items, ok), nil
	case BringToFrontEvent:
		items, ok := BringToFront(s.items, s.selection.Selected)
		return s.commitIf(items, ok), nil
	case SendToBackEvent:
		items, ok := SendToBack(s.items, s.selection.Selected)
		return s.commitIf(items, ok), nil
	case DeleteSelectionEvent:
		items, ok := DeleteItems(s.items, s.selection.Selected)
		if !ok {
			return Transition{}, nil
		}
		t := s.commit(items)
		t.SelectionChanged = s.setSelected(IDSet{})
		return t, nil
	case DuplicateSelectionEvent:
		items, ids := DuplicateItems(s.ids, s.items, s.selection.Selected)
		return s.commitCreated(items, ids), nil
	case CopyEvent:
		s.clipboard = nil
		for _, i := range selectedIndices(s.items, s.selection.Selected) {
			s.clipboard = append(s.clipboard, s.items[i].Clone())
		}
		return Transition{}, nil
	case PasteEvent:
		items, ids := PasteItems(s.ids, s.items, s.clipboard)
		return s.commitCreated(items, ids), nil
	case SelectAllEvent:
		return Transition{SelectionChanged: s.setSelected(AllIDs(s.items))}, nil
	case ClearSelectionEvent:
		s.bulkAt = nil
		return Transition{SelectionChanged: s.setSelected(IDSet{})}, nil
	case UndoEvent:
		items, ok := s.history.Undo()
		return s.restore(items, ok), nil
	case RedoEvent:
		items, ok := s.history.Redo()
		return s.restore(items, ok), nil
	case ResetViewEvent:
		changed := s.viewport != DefaultViewport()
		s.viewport = DefaultViewport()
		return Transition{ViewChanged: changed}, nil
	case SetGridEvent:
		if e.Grid.Size <= 0 {
			return Transition{}, model.NewValidationError("grid.size", "must be positive")
		}
		s.grid = e.Grid
		return Transition{ViewChanged: true}, nil
	case SetNameEvent:
		s.layout.Name = e.Name
		return s.metaChanged(), nil
	case SetCanvasSizeEvent:
		return s.setCanvasSize(e.W, e.H)
	case SetActiveEvent:
		s.layout.IsActive = e.Active
		return s.metaChanged(), nil
	case AddCategoryEvent:
		cats, _, err := AddCategory(s.ids, s.layout.Categories, e.Category)
		if err != nil {
			return Transition{}, err
		}
		s.layout.Categories = cats
		return s.metaChanged(), nil
	case UpdateCategoryEvent:
		cats, err := UpdateCategory(s.layout.Categories, e.Category)
		if err != nil {
			return Transition{}, err
		}
		s.layout.Categories = cats
		return s.metaChanged(), nil
	case DeleteCategoryEvent:
		cats, warn, err := DeleteCategory(s.layout.Categories, s.items, e.ID)
		if err != nil {
			return Transition{}, err
		}
		s.layout.Categories = cats
		t := s.metaChanged()
		t.Warning = warn
		return t, nil
	case nil:
		return Transition{}, model.NewValidationError("event", "missing event")
	default:
		return Transition{}, model.NewValidationError("type", fmt.Sprintf("unsupported event %q", ev.EventType()))
	}
}

func (s *Session) pointerDown(e PointerDownEvent) Transition {
	if s.tool != ToolSelect {
		return Transition{}
	}
	screen := geometry.Point{X: e.X, Y: e.Y}
	return s.applySelection(PointerInput{
		Kind:     PointerDown,
		Screen:   screen,
		TargetID: s.resolveTarget(e.TargetID, screen),
		Additive: e.Ctrl || e.Meta,
	})
}

func (s *Session) pointerMove(e PointerMoveEvent) Transition {
	if s.tool != ToolSelect {
		return Transition{}
	}
	return s.applySelection(PointerInput{Kind: PointerMove, Screen: geometry.Point{X: e.X, Y: e.Y}})
}

func (s *Session) pointerUp(e PointerUpEvent) Transition {
	screen := geometry.Point{X: e.X, Y: e.Y}
	if s.tool == ToolSelect {
		return s.applySelection(PointerInput{Kind: PointerUp, Screen: screen})
	}
	if s.resolveTarget(e.TargetID, screen) != "" {
		return Transition{}
	}

	at := s.grid.SnapPoint(s.viewport.ToWorld(screen))
	if s.tool == ToolBulkSeat {
		s.bulkAt = &at
		anchor := at
		return Transition{Surface: SurfaceBulkConfig, Anchor: &anchor}
	}
	typ, ok := s.tool.ItemType()
	if !ok {
		return Transition{}
	}
	it := NewItem(s.ids, typ, at, CreateOptions{Existing: s.items, Categories: s.layout.Categories})
	items := append(model.CloneItems(s.items), it)
	t := s.commit(items)
	t.Created = []string{it.ID}
	return t
}

func (s *Session) contextMenu(e ContextMenuEvent) Transition {
	screen := geometry.Point{X: e.X, Y: e.Y}
	target := s.resolveTarget(e.TargetID, screen)
	if target == "" {
		return Transition{}
	}
	t := s.applySelection(PointerInput{Kind: PointerContext, Screen: screen, TargetID: target})
	t.Surface = SurfaceContextMenu
	t.Anchor = &screen
	return t
}

func (s *Session) wheel(e WheelEvent) Transition {
	before := s.viewport
	if e.Ctrl || e.Meta {
		s.viewport = s.viewport.ZoomAt(geometry.Point{X: e.X, Y: e.Y}, e.DeltaY)
	} else {
		s.viewport = s.viewport.Pan(e.DeltaX, e.DeltaY)
	}
	return Transition{ViewChanged: s.viewport != before}
}

func (s *Session) dragEnd(e DragEndEvent) Transition {
	if s.tool != ToolSelect {
		return Transition{}
	}
	items, ok := ApplyDragEnd(s.items, e.ID, geometry.Point{X: e.X, Y: e.Y}, s.grid)
	return s.commitIf(items, ok)
}

func (s *Session) selectTool(t Tool) (Transition, error) {
	if !t.Valid() {
		return Transition{}, model.NewValidationError("tool", fmt.Sprintf("unknown tool %q", t))
	}
	s.tool = t
	if t != ToolBulkSeat {
		s.bulkAt = nil
	}
	if t != ToolSelect && s.selection.Phase != PhaseIdle {
		s.selection.Phase = PhaseIdle
		s.selection.Origin = geometry.Point{}
		s.selection.Rect = geometry.Rect{}
		return Transition{MarqueeChanged: true}, nil
	}
	return Transition{}, nil
}

func (s *Session) confirmBulk(cfg BulkConfig) (Transition, error) {
	if s.bulkAt == nil {
		return Transition{}, model.NewValidationError("bulk", "no pending bulk placement")
	}
	cfg.StartX, cfg.StartY = s.bulkAt.X, s.bulkAt.Y
	if cfg.CategoryID == "" {
		cfg.CategoryID = pickCategory("", s.layout.Categories)
	}
	if err := cfg.Validate(); err != nil {
		return Transition{}, err
	}
	seats := GenerateSeats(s.ids, cfg, s.items)
	ids := make([]string, len(seats))
	for i, it := range seats {
		ids[i] = it.ID
	}
	s.bulkAt = nil
	return s.commitCreated(append(model.CloneItems(s.items), seats...), ids), nil
}

func (s *Session) setCanvasSize(w, h int) (Transition, error) {
	var errs []model.FieldError
	if !model.CanvasSizeValid(w) {
		errs = append(errs, model.FieldError{Field: "canvasW", Message: fmt.Sprintf("must be between %d and %d", model.MinCanvasSize, model.MaxCanvasSize)})
	}
	if !model.CanvasSizeValid(h) {
		errs = append(errs, model.FieldError{Field: "canvasH", Message: fmt.Sprintf("must be between %d and %d", model.MinCanvasSize, model.MaxCanvasSize)})
	}
	if len(errs) > 0 {
		return Transition{}, model.NewValidationErrors(errs)
	}
	s.layout.CanvasW, s.layout.CanvasH = w, h
	return s.metaChanged(), nil
}

// resolveTarget trusts a client-supplied id that exists, otherwise
// hit-tests the world point under the cursor.
func (s *Session) resolveTarget(id string, screen geometry.Point) string {
	if id != "" {
		for _, it := range s.items {
			if it.ID == id {
				return id
			}
		}
	}
	return HitTest(s.items, s.viewport.ToWorld(screen))
}

func (s *Session) applySelection(in PointerInput) Transition {
	next := DispatchSelection(s.selection, in, s.items, s.viewport)
	t := Transition{
		SelectionChanged: !next.Selected.Equal(s.selection.Selected),
		MarqueeChanged:   next.Phase != s.selection.Phase || next.Rect != s.selection.Rect,
	}
	s.selection = next
	return t
}

func (s *Session) setSelected(ids IDSet) bool {
	changed := !ids.Equal(s.selection.Selected)
	s.selection.Selected = ids
	return changed
}

// commit replaces the live items and pushes one history entry.
func (s *Session) commit(items []model.LayoutItem) Transition {
	s.items = items
	s.history.Push(items)
	s.dirty = true
	return Transition{ItemsChanged: true, Committed: true}
}

func (s *Session) commitIf(items []model.LayoutItem, changed bool) Transition {
	if !changed {
		return Transition{}
	}
	return s.commit(items)
}

// commitCreated commits items and selects the newly created ids.
func (s *Session) commitCreated(items []model.LayoutItem, ids []string) Transition {
	if len(ids) == 0 {
		return Transition{}
	}
	t := s.commit(items)
	t.Created = ids
	t.SelectionChanged = s.setSelected(NewIDSet(ids...))
	return t
}

func (s *Session) restore(items []model.LayoutItem, ok bool) Transition {
	if !ok {
		return Transition{}
	}
	s.items = items
	s.dirty = true
	return Transition{ItemsChanged: true, SelectionChanged: s.setSelected(IDSet{})}
}

func (s *Session) metaChanged() Transition {
	s.dirty = true
	return Transition{MetaChanged: true}
}

// Items returns a copy of the live items.
func (s *Session) Items() []model.LayoutItem { return model.CloneItems(s.items) }

// Selected returns the selected ids in lexical order.
func (s *Session) Selected() []string { return s.selection.Selected.Sorted() }

func (s *Session) Tool() Tool         { return s.tool }
func (s *Session) Viewport() Viewport { return s.viewport }
func (s *Session) Grid() GridSettings { return s.grid }
func (s *Session) History() *History  { return s.history }
func (s *Session) Dirty() bool        { return s.dirty }
func (s *Session) IsNew() bool        { return s.layout.ID == 0 }

// Selection returns a copy of the selection state.
func (s *Session) Selection() SelectionState {
	sel := s.selection
	sel.Selected = s.selection.Selected.Clone()
	return sel
}

// Snapshot returns the layout as it would be saved.
func (s *Session) Snapshot() model.Layout {
	l := s.layout.Clone()
	l.Name = strings.TrimSpace(l.Name)
	l.Items = model.CloneItems(s.items)
	return l
}

// MarkSaved adopts the identity and timestamps of the stored layout and
// clears the dirty flag.  Items, selection and history are kept.
func (s *Session) MarkSaved(saved model.Layout) {
	s.layout.ID = saved.ID
	s.layout.OwnerID = saved.OwnerID
	s.layout.CreatedAt = saved.CreatedAt
	s.layout.UpdatedAt = saved.UpdatedAt
	s.dirty = false
}

// State is the serialisable view of a session sent to clients.
type State struct {
	Layout      model.Layout    `json:"layout"`
	Selected    []string        `json:"selected"`
	Tool        Tool            `json:"tool"`
	Viewport    Viewport        `json:"viewport"`
	Grid        GridSettings    `json:"grid"`
	Marquee     *geometry.Rect  `json:"marquee,omitempty"`
	PendingBulk *geometry.Point `json:"pendingBulk,omitempty"`
	CanUndo     bool            `json:"canUndo"`
	CanRedo     bool            `json:"canRedo"`
	Dirty       bool            `json:"dirty"`
}

// State returns a copy of everything a client needs to redraw.
func (s *Session) State() State {
	st := State{
		Layout:   s.Snapshot(),
		Selected: s.Selected(),
		Tool:     s.tool,
		Viewport: s.viewport,
		Grid:     s.grid,
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
		Dirty:    s.dirty,
	}
	if s.selection.Phase == PhaseDragging {
		r := s.selection.Rect
		st.Marquee = &r
	}
	if s.bulkAt != nil {
		p := *s.bulkAt
		st.PendingBulk = &p
	}
	return st
}
