package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		grid    float64
		enabled bool
		want    float64
	}{
		{"rounds down", 29, 20, true, 20},
		{"rounds up", 31, 20, true, 40},
		{"half rounds away from zero", 10, 20, true, 20},
		{"negative", -31, 20, true, -40},
		{"disabled", 31, 20, false, 31},
		{"zero grid", 31, 0, true, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snap(tt.value, tt.grid, tt.enabled))
		})
	}
}

func TestSnap_Idempotent(t *testing.T) {
	for _, g := range []float64{1, 5, 7.5, 20, 33} {
		for v := -500.0; v <= 500; v += 3.7 {
			once := Snap(v, g, true)
			assert.InDelta(t, once, Snap(once, g, true), 1e-9, "v=%v g=%v", v, g)
		}
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	stages := []Point{{0, 0}, {120, -40}, {-333.3, 17.25}}
	zooms := []float64{0.1, 0.75, 1, 2.5, 5}
	points := []Point{{0, 0}, {10, 20}, {-45.5, 1000.125}, {4999, 4999}}

	for _, s := range stages {
		for _, z := range zooms {
			for _, p := range points {
				got := ToWorld(ToScreen(p, s, z), s, z)
				assert.InDelta(t, p.X, got.X, 1e-9)
				assert.InDelta(t, p.Y, got.Y, 1e-9)
			}
		}
	}
}

func TestToWorld(t *testing.T) {
	got := ToWorld(Point{X: 150, Y: 90}, Point{X: 50, Y: 10}, 2)
	assert.Equal(t, Point{X: 50, Y: 40}, got)
}

func TestNormalizeRect(t *testing.T) {
	r := NormalizeRect(Point{X: 30, Y: 5}, Point{X: 10, Y: 25})
	assert.Equal(t, Rect{X: 10, Y: 5, W: 20, H: 20}, r)
}

func TestIntersects(t *testing.T) {
	marquee := Rect{X: 0, Y: 0, W: 15, H: 15}
	assert.True(t, marquee.Intersects(Rect{X: 0, Y: 0, W: 10, H: 10}))
	assert.False(t, marquee.Intersects(Rect{X: 20, Y: 20, W: 10, H: 10}))
	// shared edge only
	assert.False(t, Rect{X: 0, Y: 0, W: 10, H: 10}.Intersects(Rect{X: 10, Y: 0, W: 10, H: 10}))
}

func TestWorldToScreenRect(t *testing.T) {
	r := WorldToScreenRect(Rect{X: 10, Y: 20, W: 30, H: 40}, Point{X: 5, Y: -5}, 0.5)
	assert.Equal(t, Rect{X: 10, Y: 5, W: 15, H: 20}, r)
}

func TestUnionAndContains(t *testing.T) {
	u := Rect{X: 0, Y: 0, W: 10, H: 10}.Union(Rect{X: 20, Y: -5, W: 5, H: 5})
	assert.Equal(t, Rect{X: 0, Y: -5, W: 25, H: 15}, u)
	assert.True(t, u.Contains(Point{X: 25, Y: 10}))
	assert.False(t, u.Contains(Point{X: 25.1, Y: 10}))
	assert.True(t, math.Abs(Distance(Point{}, Point{X: 3, Y: 4})-5) < 1e-12)
}
