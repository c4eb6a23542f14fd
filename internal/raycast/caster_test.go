package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCast_AnalyticDistances(t *testing.T) {
	tests := []struct {
		name     string
		grid     func(*testing.T) *Grid
		origin   Vec2
		dir      Vec2
		expected float64
	}{
		{"Pillar face east", pillarGrid, Vec2{X: 96, Y: 96}, Vec2{X: 1}, 32},
		{"Border east", borderGrid, Vec2{X: 96, Y: 96}, Vec2{X: 1}, 160},
		{"Border west", borderGrid, Vec2{X: 96, Y: 96}, Vec2{X: -1}, 32},
		{"Border north", borderGrid, Vec2{X: 96, Y: 96}, Vec2{Y: -1}, 32},
		{"Border south", borderGrid, Vec2{X: 96, Y: 96}, Vec2{Y: 1}, 160},
		{"Border south-east", borderGrid, Vec2{X: 96, Y: 96}, FromAngle(math.Pi / 4), 160 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.grid(t)
			const step = 1.0
			d := Cast(g, tt.origin, tt.dir, step, 256)
			assert.InDelta(t, tt.expected, d, step)
			assert.GreaterOrEqual(t, d, tt.expected-1e-9, "a march never stops before the wall face")
		})
	}
}

func TestCast_OriginInsideWallHitsOnFirstProbe(t *testing.T) {
	g := borderGrid(t)
	d := Cast(g, Vec2{X: 32, Y: 32}, Vec2{X: -1}, 1, 256)
	require.Equal(t, 1.0, d)
}

func TestCast_NoHitReturnsMaxDistance(t *testing.T) {
	g := borderGrid(t)
	require.Equal(t, 100.0, Cast(g, Vec2{X: 96, Y: 96}, Vec2{X: 1}, 1, 100))
	require.Equal(t, 100.0, Cast(g, Vec2{X: 96, Y: 96}, Vec2{}, 1, 100), "zero direction never hits")
	require.Equal(t, 100.0, Cast(g, Vec2{X: 96, Y: 96}, Vec2{X: 1}, 0, 100), "non-positive step cannot march")

	m, err := NewMarcher(g, 1, 100)
	require.NoError(t, err)
	hit := m.Cast(Vec2{X: 96, Y: 96}, Vec2{X: 1})
	require.False(t, hit.Wall)
	require.Equal(t, 100.0, hit.Distance)
	require.Equal(t, Vec2{X: 196, Y: 96}, hit.Point)
}

func TestCast_Determinism(t *testing.T) {
	g := pillarGrid(t)
	origin := Vec2{X: 100, Y: 150}
	for i := 0; i < 64; i++ {
		dir := FromAngle(float64(i) * tau / 64)
		first := Cast(g, origin, dir, 0.5, 400)
		for n := 0; n < 3; n++ {
			require.Equal(t, first, Cast(g, origin, dir, 0.5, 400))
		}
	}
}

func TestCast_BoundaryContainment(t *testing.T) {
	g := pillarGrid(t)
	const (
		step        = 0.5
		maxDistance = 200.0
	)
	origins := []Vec2{{X: 96, Y: 96}, {X: 70, Y: 250}, {X: 250, Y: 70}, {X: 160, Y: 160}}
	for _, origin := range origins {
		require.False(t, g.IsWall(origin))
		for i := 0; i < 180; i++ {
			dir := FromAngle(float64(i) * tau / 180)
			d := Cast(g, origin, dir, step, maxDistance)
			require.LessOrEqual(t, d, maxDistance)
			if d < maxDistance {
				assert.True(t, g.IsWall(origin.Add(dir.Scale(d))), "origin %v angle %d", origin, i)
				assert.False(t, g.IsWall(origin.Add(dir.Scale(d-step))), "origin %v angle %d", origin, i)
			}
		}
	}
}

func TestCast_MonotonicRangeGrowth(t *testing.T) {
	g := pillarGrid(t)
	origin := Vec2{X: 160, Y: 160}
	ranges := []float64{16, 48, 96, 200, 1000}
	for i := 0; i < 90; i++ {
		dir := FromAngle(float64(i) * tau / 90)
		prev := 0.0
		prevHit := false
		for _, r := range ranges {
			d := Cast(g, origin, dir, 1, r)
			require.GreaterOrEqual(t, d, prev)
			if prevHit {
				require.Equal(t, prev, d, "a hit must be stable under a longer range")
			}
			prevHit = d < r
			prev = d
		}
	}
}

func TestMarcher_Hit(t *testing.T) {
	g := pillarGrid(t)
	m, err := NewMarcher(g, 1, 256)
	require.NoError(t, err)
	require.Equal(t, 256.0, m.MaxDistance())

	hit := m.Cast(Vec2{X: 96, Y: 96}, Vec2{X: 1})
	require.True(t, hit.Wall)
	require.Equal(t, 32.0, hit.Distance)
	require.Equal(t, 2, hit.Col)
	require.Equal(t, 1, hit.Row)
	require.Equal(t, SideX, hit.Side)

	hit = m.Cast(Vec2{X: 96, Y: 96}, Vec2{Y: -1})
	require.True(t, hit.Wall)
	require.Equal(t, 1, hit.Col)
	require.Equal(t, 0, hit.Row)
	require.Equal(t, SideY, hit.Side)
}

func TestNewMarcher_Invalid(t *testing.T) {
	g := borderGrid(t)
	tests := []struct {
		name      string
		grid      *Grid
		step, max float64
	}{
		{"Nil grid", nil, 1, 10},
		{"Zero step", g, 0, 10},
		{"Negative step", g, -1, 10},
		{"NaN step", g, math.NaN(), 10},
		{"Zero range", g, 1, 0},
		{"Infinite range", g, 1, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMarcher(tt.grid, tt.step, tt.max)
			require.ErrorIs(t, err, ErrInvalidCaster)
		})
	}
}

func TestResumeMarch(t *testing.T) {
	g := pillarGrid(t)
	const (
		step        = 1.0
		maxDistance = 256.0
	)
	origin := Vec2{X: 96, Y: 96}
	east := Vec2{X: 1}
	m, err := NewMarcher(g, step, maxDistance)
	require.NoError(t, err)
	want := m.Cast(origin, east)
	require.True(t, want.Wall)

	t.Run("Agreeing index", func(t *testing.T) {
		got := ResumeMarch(g, origin, east, int(want.Distance/step), step, maxDistance)
		require.Equal(t, want, got)
	})

	t.Run("Index in an empty tile marches again", func(t *testing.T) {
		got := ResumeMarch(g, origin, east, 20, step, maxDistance)
		require.False(t, g.IsWall(origin.Add(east.Scale(20))))
		require.Equal(t, want, got)
		require.True(t, g.IsWall(got.Point))
	})

	t.Run("Index past range marches again", func(t *testing.T) {
		got := ResumeMarch(g, origin, east, 1000, step, maxDistance)
		require.Equal(t, want, got)
	})

	t.Run("Miss", func(t *testing.T) {
		for _, k := range []int{0, -1} {
			got := ResumeMarch(g, origin, east, k, step, maxDistance)
			require.False(t, got.Wall)
			require.Equal(t, maxDistance, got.Distance)
		}
	})

	t.Run("Float32 rounding across a grid line", func(t *testing.T) {
		cfg := DefaultConfig()
		dg, err := ParseGrid(DefaultMaze(), cfg.TileSize)
		require.NoError(t, err)
		o := Vec2{X: 96, Y: 96}
		for i := 0; i < 3600; i++ {
			dir := FromAngle(float64(i) * tau / 3600)
			k := float32March(dg, o, dir, float32(cfg.StepSize), float32(cfg.MaxDistance))
			hit := ResumeMarch(dg, o, dir, k, cfg.StepSize, cfg.MaxDistance)
			if hit.Wall {
				require.True(t, dg.IsWall(hit.Point), "ray %d reported a wall at an empty point", i)
				require.Equal(t, Wall, dg.CellAt(hit.Col, hit.Row))
			}
		}
	})
}

// float32March mirrors the device kernel: it returns the first step index
// whose float32 position lands in a wall, or -1.
func float32March(g *Grid, origin, dir Vec2, step, maxDistance float32) int {
	ox, oy := float32(origin.X), float32(origin.Y)
	dx, dy := float32(dir.X), float32(dir.Y)
	tile := float32(g.TileSize())
	for k := 1; ; k++ {
		t := float32(k) * step
		if t > maxDistance {
			return -1
		}
		col := int(math.Floor(float64((ox + dx*t) / tile)))
		row := int(math.Floor(float64((oy + dy*t) / tile)))
		if !g.InBounds(col, row) || g.CellAt(col, row) != Empty {
			return k
		}
	}
}
