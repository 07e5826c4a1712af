package editor

import (
	"math"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0
	// ZoomStep is the factor applied per wheel notch.
	ZoomStep = 1.1
)

// Viewport is the stage pan offset (screen px) and zoom factor.
type Viewport struct {
	StageX float64 `json:"stageX"`
	StageY float64 `json:"stageY"`
	Zoom   float64 `json:"zoom"`
}

// DefaultViewport is the reset view: no pan, 100% zoom.
func DefaultViewport() Viewport { return Viewport{Zoom: 1} }

// Stage returns the pan offset as a point.
func (v Viewport) Stage() geometry.Point { return geometry.Point{X: v.StageX, Y: v.StageY} }

// ToWorld converts a screen point under this viewport.
func (v Viewport) ToWorld(screen geometry.Point) geometry.Point {
	return geometry.ToWorld(screen, v.Stage(), v.Zoom)
}

// ToScreen converts a world point under this viewport.
func (v Viewport) ToScreen(world geometry.Point) geometry.Point {
	return geometry.ToScreen(world, v.Stage(), v.Zoom)
}

// ZoomAt zooms one step in (deltaY < 0) or out (deltaY > 0) keeping the
// world point under the pointer fixed on screen.
func (v Viewport) ZoomAt(pointer geometry.Point, deltaY float64) Viewport {
	if deltaY == 0 {
		return v
	}
	anchor := v.ToWorld(pointer)
	zoom := v.Zoom
	if deltaY < 0 {
		zoom *= ZoomStep
	} else {
		zoom /= ZoomStep
	}
	zoom = ClampZoom(zoom)
	return Viewport{
		StageX: pointer.X - anchor.X*zoom,
		StageY: pointer.Y - anchor.Y*zoom,
		Zoom:   zoom,
	}
}

// Pan scrolls the stage by a wheel delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.StageX -= dx
	v.StageY -= dy
	return v
}

// ClampZoom bounds z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}
