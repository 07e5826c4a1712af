package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

func TestApplyDragEnd_Snaps(t *testing.T) {
	items := []model.LayoutItem{box("a", 0, 0, 30, 30)}
	out, ok := ApplyDragEnd(items, "a", geometry.Point{X: 33, Y: 47}, DefaultGrid())
	require.True(t, ok)
	assert.Equal(t, 40.0, out[0].X)
	assert.Equal(t, 40.0, out[0].Y)
	assert.Equal(t, 0.0, items[0].X, "input must not be modified")
}

func TestApplyDragEnd_NoMove(t *testing.T) {
	items := []model.LayoutItem{box("a", 40, 40, 30, 30)}
	_, ok := ApplyDragEnd(items, "a", geometry.Point{X: 42, Y: 38}, DefaultGrid())
	assert.False(t, ok)

	_, ok = ApplyDragEnd(items, "missing", geometry.Point{X: 100, Y: 100}, DefaultGrid())
	assert.False(t, ok)
}

func TestApplyTransformEnd_ResizeFloor(t *testing.T) {
	noSnap := GridSettings{Size: 20}
	items := []model.LayoutItem{box("a", 0, 0, 30, 30), box("b", 0, 0, 100, 60)}
	out, ok := ApplyTransformEnd(items, []NodeTransform{
		{ID: "a", ScaleX: 0.1, ScaleY: 0.2},
		{ID: "b", ScaleX: -0.01, ScaleY: 0.001},
	}, noSnap)
	require.True(t, ok)
	for _, it := range out {
		assert.Equal(t, 10.0, it.W, it.ID)
		assert.Equal(t, 10.0, it.H, it.ID)
	}

	fine := GridSettings{Size: 5, Snap: true}
	out, _ = ApplyTransformEnd(items, []NodeTransform{{ID: "a", ScaleX: 0.01, ScaleY: 0.01}}, fine)
	assert.Equal(t, 10.0, out[0].W)
	assert.Equal(t, 10.0, out[0].H)
}

func TestApplyTransformEnd_ScaleSnapRotate(t *testing.T) {
	items := []model.LayoutItem{box("a", 0, 0, 100, 60)}
	out, ok := ApplyTransformEnd(items, []NodeTransform{
		{ID: "a", X: 33, Y: 9, ScaleX: 1.5, ScaleY: 2, Rotation: -90},
	}, DefaultGrid())
	require.True(t, ok)

	it := out[0]
	assert.Equal(t, 40.0, it.X)
	assert.Equal(t, 0.0, it.Y)
	assert.Equal(t, 160.0, it.W) // 150 snapped to 20
	assert.Equal(t, 120.0, it.H)
	assert.Equal(t, 270.0, it.Rotation)
}

func TestApplyTransformEnd_ZeroScaleMeansUnchanged(t *testing.T) {
	items := []model.LayoutItem{box("a", 20, 20, 100, 60)}
	_, ok := ApplyTransformEnd(items, []NodeTransform{{ID: "a", X: 20, Y: 20}}, DefaultGrid())
	assert.False(t, ok)
}

func TestBoundBox(t *testing.T) {
	old := geometry.Rect{W: 50, H: 50}
	assert.Equal(t, old, BoundBox(old, geometry.Rect{W: 9, H: 50}))
	assert.Equal(t, old, BoundBox(old, geometry.Rect{W: 50, H: 2}))
	ok := geometry.Rect{X: 5, W: 10, H: 10}
	assert.Equal(t, ok, BoundBox(old, ok))
}

func TestNormalizeRotation(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeRotation(360))
	assert.Equal(t, 350.0, NormalizeRotation(-10))
	assert.Equal(t, 45.0, NormalizeRotation(765))
}
