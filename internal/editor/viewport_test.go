package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
)

func TestViewport_ZoomAtKeepsAnchor(t *testing.T) {
	vp := Viewport{StageX: 30, StageY: -10, Zoom: 1.3}
	pointer := geometry.Point{X: 420, Y: 215}
	before := vp.ToWorld(pointer)

	in := vp.ZoomAt(pointer, -120)
	assert.InDelta(t, 1.3*ZoomStep, in.Zoom, 1e-9)
	after := in.ToWorld(pointer)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	out := vp.ZoomAt(pointer, 120)
	assert.InDelta(t, 1.3/ZoomStep, out.Zoom, 1e-9)

	assert.Equal(t, vp, vp.ZoomAt(pointer, 0))
}

func TestViewport_ZoomIsClamped(t *testing.T) {
	vp := DefaultViewport()
	for i := 0; i < 100; i++ {
		vp = vp.ZoomAt(geometry.Point{}, -1)
	}
	assert.Equal(t, MaxZoom, vp.Zoom)
	for i := 0; i < 200; i++ {
		vp = vp.ZoomAt(geometry.Point{}, 1)
	}
	assert.Equal(t, MinZoom, vp.Zoom)
}

func TestViewport_Pan(t *testing.T) {
	vp := DefaultViewport().Pan(10, -25)
	assert.Equal(t, Viewport{StageX: -10, StageY: 25, Zoom: 1}, vp)
}
