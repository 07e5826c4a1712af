// Package geometry converts between screen pixels, the panned/zoomed stage
// and world (layout) coordinates, snaps values to the editor grid and
// provides the axis-aligned rectangle tests used for hit-testing.
package geometry

import "math"

// Point is a 2D position.  Depending on context it is expressed in screen
// pixels or in world units; the functions below document which.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ToWorld maps a screen point into world coordinates given the stage
// offset and zoom factor.  Callers guarantee zoom > 0.
func ToWorld(screen, stage Point, zoom float64) Point {
	return Point{
		X: (screen.X - stage.X) / zoom,
		Y: (screen.Y - stage.Y) / zoom,
	}
}

// ToScreen is the inverse of ToWorld.
func ToScreen(world, stage Point, zoom float64) Point {
	return Point{
		X: world.X*zoom + stage.X,
		Y: world.Y*zoom + stage.Y,
	}
}

// Snap rounds value to the nearest multiple of gridSize when enabled.  A
// non-positive grid size disables snapping.
func Snap(value, gridSize float64, enabled bool) float64 {
	if !enabled || gridSize <= 0 {
		return value
	}
	return math.Round(value/gridSize) * gridSize
}

// SnapPoint snaps both coordinates of p.
func SnapPoint(p Point, gridSize float64, enabled bool) Point {
	return Point{X: Snap(p.X, gridSize, enabled), Y: Snap(p.Y, gridSize, enabled)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// NormalizeRect returns the bounding box of two corner points regardless of
// the drag direction.
func NormalizeRect(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// WorldToScreenRect projects a world-space box onto the screen.
func WorldToScreenRect(r Rect, stage Point, zoom float64) Rect {
	return Rect{
		X: r.X*zoom + stage.X,
		Y: r.Y*zoom + stage.Y,
		W: r.W * zoom,
		H: r.H * zoom,
	}
}

// Intersects reports whether r and o overlap.  Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }
