package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazecast/internal/raycast"
)

func TestPerpendicular(t *testing.T) {
	assert.Equal(t, 10.0, Perpendicular(10, 1, 1))
	assert.InDelta(t, 5, Perpendicular(10, math.Pi/3, 0), 1e-12)
	assert.InDelta(t, 5, Perpendicular(10, -math.Pi/3, 0), 1e-12)
}

func TestProjection_Slice(t *testing.T) {
	p := NewProjection(320, 200, math.Pi/2, 64, 1024)
	require.InDelta(t, 160, p.PlaneDistance, 1e-9)

	t.Run("Centre ray", func(t *testing.T) {
		s := p.Slice(raycast.Ray{Angle: 0, Hit: raycast.Hit{Distance: 160, Wall: true, Side: raycast.SideX}}, 0)
		require.True(t, s.Visible)
		assert.InDelta(t, 68, s.Top, 1)
		assert.InDelta(t, 132, s.Bottom, 1)
		assert.InDelta(t, Brightness(160, 1024), s.Brightness, 1e-12)
	})

	t.Run("Fisheye corrected", func(t *testing.T) {
		straight := p.Slice(raycast.Ray{Angle: 0, Hit: raycast.Hit{Distance: 100, Wall: true}}, 0)
		slanted := p.Slice(raycast.Ray{Angle: math.Pi / 4, Hit: raycast.Hit{Distance: 100 * math.Sqrt2, Wall: true}}, 0)
		assert.Equal(t, straight.Top, slanted.Top)
		assert.Equal(t, straight.Bottom, slanted.Bottom)
	})

	t.Run("Close wall fills the column", func(t *testing.T) {
		s := p.Slice(raycast.Ray{Hit: raycast.Hit{Distance: 0, Wall: true}}, 0)
		assert.Equal(t, 0, s.Top)
		assert.Equal(t, 200, s.Bottom)
	})

	t.Run("Horizontal side is darker", func(t *testing.T) {
		x := p.Slice(raycast.Ray{Hit: raycast.Hit{Distance: 50, Wall: true, Side: raycast.SideX}}, 0)
		y := p.Slice(raycast.Ray{Hit: raycast.Hit{Distance: 50, Wall: true, Side: raycast.SideY}}, 0)
		assert.Less(t, y.Brightness, x.Brightness)
	})

	t.Run("Miss is invisible", func(t *testing.T) {
		s := p.Slice(raycast.Ray{Hit: raycast.Hit{Distance: 1024}}, 0)
		assert.False(t, s.Visible)
		assert.Equal(t, s.Top, s.Bottom)
	})
}

func TestProjection_Columns(t *testing.T) {
	p := NewProjection(10, 10, math.Pi/2, 64, 100)
	covered := make([]int, 10)
	for i := 0; i < 4; i++ {
		x0, x1 := p.Columns(i, 4)
		for x := x0; x < x1; x++ {
			covered[x]++
		}
	}
	for x, c := range covered {
		assert.Equal(t, 1, c, "column %d", x)
	}

	x0, x1 := p.Columns(3, 40)
	assert.Equal(t, 0, x0)
	assert.Equal(t, 1, x1)
}

func TestBrightnessAndShade(t *testing.T) {
	assert.Equal(t, 1.0, Brightness(0, 100))
	assert.Equal(t, 0.0, Brightness(100, 100))
	assert.Equal(t, 0.0, Brightness(500, 100))
	assert.Equal(t, 0.0, Brightness(1, 0))
	assert.Greater(t, Brightness(10, 100), Brightness(50, 100))

	assert.Equal(t, '█', Shade(1))
	assert.Equal(t, '▓', Shade(0.6))
	assert.Equal(t, '▒', Shade(0.3))
	assert.Equal(t, '░', Shade(0.1))
	assert.Equal(t, ' ', Shade(0))

	assert.Equal(t, ' ', FloorShade(10, 100))
	assert.Equal(t, '#', FloorShade(99, 100))
	assert.Equal(t, ' ', FloorShade(50, 100))
}
