package editor

import (
	"sort"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

const (
	// DragThreshold is how far (screen px) the pointer must travel from
	// the down position before an armed drag becomes a marquee.
	DragThreshold = 3.0
	// MinMarqueeSide is the smallest marquee width and height (screen px)
	// that performs a selection on release.
	MinMarqueeSide = 5.0
)

// IDSet is an unordered set of item ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same ids.
func (s IDSet) Equal(o IDSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// MarqueePhase is the state of the rubber-band selection machine.
type MarqueePhase string

const (
	PhaseIdle     MarqueePhase = "idle"
	PhaseArmed    MarqueePhase = "armed"
	PhaseDragging MarqueePhase = "dragging"
)

// SelectionState is the selected id set plus the transient marquee state.
// Origin and Rect are in screen coordinates.
type SelectionState struct {
	Selected IDSet
	Phase    MarqueePhase
	Origin   geometry.Point
	Rect     geometry.Rect
}

// NewSelectionState returns an idle state with nothing selected.
func NewSelectionState() SelectionState {
	return SelectionState{Selected: IDSet{}, Phase: PhaseIdle}
}

// PointerKind distinguishes the pointer inputs the selection machine reacts to.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerContext
)

// PointerInput is a pointer event already resolved against the items:
// TargetID is the item under the cursor, or empty for bare canvas.
type PointerInput struct {
	Kind     PointerKind
	Screen   geometry.Point
	TargetID string
	Additive bool // ctrl/cmd held
}

// DispatchSelection computes the next selection state for one pointer
// input.  The input state is never modified.
func DispatchSelection(s SelectionState, in PointerInput, items []model.LayoutItem, vp Viewport) SelectionState {
	next := s
	next.Selected = s.Selected.Clone()

	switch in.Kind {
	case PointerDown:
		if in.TargetID != "" {
			if in.Additive {
				if next.Selected.Has(in.TargetID) {
					delete(next.Selected, in.TargetID)
				} else {
					next.Selected[in.TargetID] = struct{}{}
				}
			} else {
				next.Selected = NewIDSet(in.TargetID)
			}
			next.Phase = PhaseIdle
			next.Rect = geometry.Rect{}
			return next
		}
		if !in.Additive {
			next.Selected = IDSet{}
		}
		next.Phase = PhaseArmed
		next.Origin = in.Screen
		next.Rect = geometry.Rect{X: in.Screen.X, Y: in.Screen.Y}

	case PointerMove:
		if s.Phase == PhaseIdle {
			return next
		}
		if geometry.Distance(s.Origin, in.Screen) > DragThreshold {
			next.Phase = PhaseDragging
		}
		next.Rect = geometry.NormalizeRect(s.Origin, in.Screen)

	case PointerUp:
		if s.Phase == PhaseDragging && s.Rect.W >= MinMarqueeSide && s.Rect.H >= MinMarqueeSide {
			next.Selected = NewIDSet(MarqueeSelect(items, s.Rect, vp)...)
		}
		next.Phase = PhaseIdle
		next.Origin = geometry.Point{}
		next.Rect = geometry.Rect{}

	case PointerContext:
		if in.TargetID != "" && !next.Selected.Has(in.TargetID) {
			next.Selected = NewIDSet(in.TargetID)
		}
	}
	return next
}

// MarqueeSelect returns the ids of items whose screen-space box overlaps
// rect, in collection order.
func MarqueeSelect(items []model.LayoutItem, rect geometry.Rect, vp Viewport) []string {
	var ids []string
	for _, it := range items {
		if ScreenBox(it, vp).Intersects(rect) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// WorldBox is the axis-aligned world box of an item, ignoring rotation.
func WorldBox(it model.LayoutItem) geometry.Rect {
	return geometry.Rect{X: it.X, Y: it.Y, W: it.W, H: it.H}
}

// ScreenBox projects an item's box into screen space.
func ScreenBox(it model.LayoutItem, vp Viewport) geometry.Rect {
	return geometry.WorldToScreenRect(WorldBox(it), vp.Stage(), vp.Zoom)
}

// HitTest returns the topmost item containing the world point, or "".
// Later items paint over earlier ones, so the search runs back to front.
func HitTest(items []model.LayoutItem, world geometry.Point) string {
	for i := len(items) - 1; i >= 0; i-- {
		if WorldBox(items[i]).Contains(world) {
			return items[i].ID
		}
	}
	return ""
}

// selectedIndices returns the indices of selected items in collection order.
func selectedIndices(items []model.LayoutItem, selected IDSet) []int {
	idx := make([]int, 0, len(selected))
	for i, it := range items {
		if selected.Has(it.ID) {
			idx = append(idx, i)
		}
	}
	return idx
}
