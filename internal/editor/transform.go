package editor

import (
	"math"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// GridSettings controls snapping and grid display.
type GridSettings struct {
	Size    float64 `json:"size"`
	Snap    bool    `json:"snap"`
	Visible bool    `json:"visible"`
}

// DefaultGrid is a visible 20-unit grid with snapping on.
func DefaultGrid() GridSettings { return GridSettings{Size: 20, Snap: true, Visible: true} }

func (g GridSettings) snap(v float64) float64 { return geometry.Snap(v, g.Size, g.Snap) }

// SnapPoint snaps a world point to the grid when snapping is enabled.
func (g GridSettings) SnapPoint(p geometry.Point) geometry.Point {
	return geometry.SnapPoint(p, g.Size, g.Snap)
}

// NodeTransform is the accumulated state of one node when a resize/rotate
// gesture ends.  ScaleX/ScaleY are multiplied into the stored size and are
// conceptually reset to 1 afterwards; zero means unchanged.
type NodeTransform struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
}

// ApplyDragEnd moves item id to pos (snapped) and returns the new items.
// It reports false when the item does not exist or did not move.
func ApplyDragEnd(items []model.LayoutItem, id string, pos geometry.Point, grid GridSettings) ([]model.LayoutItem, bool) {
	out := model.CloneItems(items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		x, y := grid.snap(pos.X), grid.snap(pos.Y)
		if x == out[i].X && y == out[i].Y {
			return items, false
		}
		out[i].X, out[i].Y = x, y
		return out, true
	}
	return items, false
}

// ApplyTransformEnd folds the scale factors of each node into the item
// size, snaps position and size, records rotation and keeps both sides at
// or above model.MinItemSize.
func ApplyTransformEnd(items []model.LayoutItem, nodes []NodeTransform, grid GridSettings) ([]model.LayoutItem, bool) {
	byID := make(map[string]NodeTransform, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	out := model.CloneItems(items)
	changed := false
	for i := range out {
		n, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		sx, sy := n.ScaleX, n.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		w := math.Max(model.MinItemSize, out[i].W*math.Abs(sx))
		h := math.Max(model.MinItemSize, out[i].H*math.Abs(sy))

		next := out[i]
		next.X = grid.snap(n.X)
		next.Y = grid.snap(n.Y)
		next.W = ClampSize(grid.snap(w))
		next.H = ClampSize(grid.snap(h))
		next.Rotation = NormalizeRotation(n.Rotation)
		if next != out[i] {
			out[i] = next
			changed = true
		}
	}
	if !changed {
		return items, false
	}
	return out, true
}

// BoundBox is the transform-handle constraint: a proposed box with either
// side below the minimum is rejected in favour of the previous box.
func BoundBox(old, proposed geometry.Rect) geometry.Rect {
	if proposed.W < model.MinItemSize || proposed.H < model.MinItemSize {
		return old
	}
	return proposed
}

// ClampSize applies the minimum item size.
func ClampSize(v float64) float64 { return math.Max(model.MinItemSize, v) }

// NormalizeRotation maps any angle in degrees into [0, 360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}
