package raycast

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCaster is wrapped when a caster is built with unusable parameters.
var ErrInvalidCaster = errors.New("invalid caster")

// Side records which kind of grid line the ray crossed to enter the struck tile.
type Side uint8

const (
	SideNone Side = iota
	// SideX means the ray crossed a vertical grid line (the column changed).
	SideX
	// SideY means the ray crossed a horizontal grid line (the row changed).
	SideY
)

// Hit is the result of one cast. When Wall is false the ray travelled
// MaxDistance without striking anything and Distance holds that sentinel.
type Hit struct {
	Distance float64
	Point    Vec2
	Col      int
	Row      int
	Side     Side
	Wall     bool
}

// Caster casts a single ray from origin along direction.
type Caster interface {
	Cast(origin, direction Vec2) Hit
}

// Cast marches from origin along direction in stepSize increments and returns
// the distance travelled when the first probe lands in a wall, or maxDistance
// when nothing is hit within range. direction is expected to be unit length.
func Cast(g *Grid, origin, direction Vec2, stepSize, maxDistance float64) float64 {
	return march(g, origin, direction, stepSize, maxDistance).Distance
}

// Marcher is the fixed-step caster. It is cheap and simple but only resolves a
// hit to within one step, and a step larger than the thinnest wall can tunnel
// through it at grazing angles. Traverser is the exact alternative.
type Marcher struct {
	grid *Grid
	step float64
	max  float64
}

// NewMarcher validates the step and range and returns a Marcher over g.
func NewMarcher(g *Grid, stepSize, maxDistance float64) (*Marcher, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidCaster)
	}
	if !positiveFinite(stepSize) {
		return nil, fmt.Errorf("%w: step size %v must be positive and finite", ErrInvalidCaster, stepSize)
	}
	if !positiveFinite(maxDistance) {
		return nil, fmt.Errorf("%w: max distance %v must be positive and finite", ErrInvalidCaster, maxDistance)
	}
	return &Marcher{grid: g, step: stepSize, max: maxDistance}, nil
}

func (m *Marcher) MaxDistance() float64 { return m.max }

// Cast implements Caster.
func (m *Marcher) Cast(origin, direction Vec2) Hit {
	return march(m.grid, origin, direction, m.step, m.max)
}

// march places probe k at origin + direction*(k*step). Probes do not depend on
// maxDistance, so a longer range always finds the same first hit.
func march(g *Grid, origin, direction Vec2, step, maxDistance float64) Hit {
	if !positiveFinite(step) || math.IsNaN(maxDistance) || math.IsInf(maxDistance, 0) {
		return MissHit(g, origin, direction, maxDistance)
	}
	for k := 1; ; k++ {
		travelled := float64(k) * step
		if travelled > maxDistance {
			return MissHit(g, origin, direction, maxDistance)
		}
		if g.IsWall(origin.Add(direction.Scale(travelled))) {
			return MarchHit(g, origin, direction, travelled, step)
		}
	}
}

// ResumeMarch settles a march that stopped at step k on another executor,
// typically a float32 device. k <= 0 reports a miss. Step k is re-tested in
// float64 and, when it does not land in a wall, the ray is marched again from
// the start so a returned hit always has a wall at its Point.
func ResumeMarch(g *Grid, origin, direction Vec2, k int, step, maxDistance float64) Hit {
	if k <= 0 {
		return MissHit(g, origin, direction, maxDistance)
	}
	travelled := float64(k) * step
	if travelled <= maxDistance && g.IsWall(origin.Add(direction.Scale(travelled))) {
		return MarchHit(g, origin, direction, travelled, step)
	}
	return march(g, origin, direction, step, maxDistance)
}

// MarchHit fills in a Hit for a march that stopped on a wall probe at
// distance. The side is inferred from the tile of the preceding probe.
func MarchHit(g *Grid, origin, direction Vec2, distance, step float64) Hit {
	p := origin.Add(direction.Scale(distance))
	col, row := g.ToTile(p)
	prevCol, _ := g.ToTile(origin.Add(direction.Scale(math.Max(0, distance-step))))
	side := SideY
	if prevCol != col {
		side = SideX
	}
	return Hit{Distance: distance, Point: p, Col: col, Row: row, Side: side, Wall: true}
}

// MissHit returns the no-wall sentinel for a ray of length maxDistance.
func MissHit(g *Grid, origin, direction Vec2, maxDistance float64) Hit {
	p := origin.Add(direction.Scale(maxDistance))
	col, row := g.ToTile(p)
	return Hit{Distance: maxDistance, Point: p, Col: col, Row: row}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
