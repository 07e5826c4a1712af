package editor

import (
	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// ShapeKind tells the client which primitive to paint for an item.
type ShapeKind string

const (
	ShapeKindRect     ShapeKind = "rect"
	ShapeKindCircle   ShapeKind = "circle"
	ShapeKindHalf     ShapeKind = "half-circle"
	ShapeKindTriangle ShapeKind = "triangle"
)

// DrawItem is one entry of the paint list.
type DrawItem struct {
	ID       string         `json:"id"`
	Type     model.ItemType `json:"type"`
	Kind     ShapeKind      `json:"kind"`
	World    geometry.Rect  `json:"world"`
	Screen   geometry.Rect  `json:"screen"`
	Rotation float64        `json:"rotation"`
	Fill     string         `json:"fill"`
	Label    string         `json:"label,omitempty"`
	Selected bool           `json:"selected"`
}

// Frame is everything needed to paint one frame of the canvas.  Items
// are in paint order, back to front.
type Frame struct {
	Canvas       geometry.Rect  `json:"canvas"` // screen space
	Items        []DrawItem     `json:"items"`
	SelectionBox *geometry.Rect `json:"selectionBox,omitempty"`
	Marquee      *geometry.Rect `json:"marquee,omitempty"`
	GridSpacing  float64        `json:"gridSpacing,omitempty"` // screen px, 0 when hidden
	Viewport     Viewport       `json:"viewport"`
}

// Render compiles the session into a paint list.
func Render(s *Session) Frame {
	vp := s.viewport
	f := Frame{
		Canvas:   geometry.WorldToScreenRect(geometry.Rect{W: float64(s.layout.CanvasW), H: float64(s.layout.CanvasH)}, vp.Stage(), vp.Zoom),
		Items:    make([]DrawItem, 0, len(s.items)),
		Viewport: vp,
	}
	if s.grid.Visible {
		f.GridSpacing = s.grid.Size * vp.Zoom
	}

	var bounds *geometry.Rect
	for _, it := range s.items {
		selected := s.selection.Selected.Has(it.ID)
		f.Items = append(f.Items, DrawItem{
			ID:       it.ID,
			Type:     it.Type,
			Kind:     shapeKind(it),
			World:    WorldBox(it),
			Screen:   ScreenBox(it, vp),
			Rotation: it.Rotation,
			Fill:     model.ItemColor(it, s.layout.Categories),
			Label:    it.Label,
			Selected: selected,
		})
		if !selected {
			continue
		}
		box := ScreenBox(it, vp)
		if bounds == nil {
			bounds = &box
		} else {
			u := bounds.Union(box)
			bounds = &u
		}
	}
	f.SelectionBox = bounds

	if s.selection.Phase == PhaseDragging {
		r := s.selection.Rect
		f.Marquee = &r
	}
	return f
}

func shapeKind(it model.LayoutItem) ShapeKind {
	switch it.Type {
	case model.ItemSeat:
		return ShapeKindCircle
	case model.ItemTable:
		switch it.Shape {
		case model.ShapeRound:
			return ShapeKindCircle
		case model.ShapeHalf:
			return ShapeKindHalf
		case model.ShapeTriangle:
			return ShapeKindTriangle
		}
	}
	return ShapeKindRect
}
