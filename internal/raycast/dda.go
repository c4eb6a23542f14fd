package raycast

import (
	"fmt"
	"math"
)

// Traverser casts by stepping from grid line to grid line (DDA), so hits are
// exact and thin walls cannot be skipped.
type Traverser struct {
	grid *Grid
	max  float64
}

// NewTraverser returns a DDA caster over g limited to maxDistance.
func NewTraverser(g *Grid, maxDistance float64) (*Traverser, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidCaster)
	}
	if !positiveFinite(maxDistance) {
		return nil, fmt.Errorf("%w: max distance %v must be positive and finite", ErrInvalidCaster, maxDistance)
	}
	return &Traverser{grid: g, max: maxDistance}, nil
}

func (t *Traverser) MaxDistance() float64 { return t.max }

// Cast implements Caster. The direction is normalized first; a zero direction
// never hits. An origin already inside a wall hits at distance 0. Hit points lie
// on the struck grid line, so Col and Row rather than the point identify the
// wall tile.
func (t *Traverser) Cast(origin, direction Vec2) Hit {
	g := t.grid
	dir, ok := direction.Normalize()
	if !ok || !origin.Finite() {
		return MissHit(g, origin, dir, t.max)
	}
	col, row := g.ToTile(origin)
	if g.CellAt(col, row) == Wall {
		return Hit{Distance: 0, Point: origin, Col: col, Row: row, Wall: true}
	}
	stepX, deltaX, sideX := axis(origin.X, dir.X, col, g.tileSize)
	stepY, deltaY, sideY := axis(origin.Y, dir.Y, row, g.tileSize)
	for {
		var dist float64
		var side Side
		if sideX < sideY {
			dist, side = sideX, SideX
			col += stepX
			sideX += deltaX
		} else {
			dist, side = sideY, SideY
			row += stepY
			sideY += deltaY
		}
		if dist > t.max {
			return MissHit(g, origin, dir, t.max)
		}
		if g.CellAt(col, row) == Wall {
			return Hit{Distance: dist, Point: origin.Add(dir.Scale(dist)), Col: col, Row: row, Side: side, Wall: true}
		}
	}
}

// axis returns the tile step along one axis, the ray length between
// consecutive grid lines and the ray length to the first grid line.
func axis(origin, dir float64, tile int, size float64) (step int, delta, first float64) {
	switch {
	case dir > 0:
		return 1, size / dir, (float64(tile+1)*size - origin) / dir
	case dir < 0:
		return -1, -size / dir, (origin - float64(tile)*size) / -dir
	}
	return 0, math.Inf(1), math.Inf(1)
}

// Traverse calls fn for every tile the segment from..to passes through, in
// order, starting with the tile containing from. It stops early when fn
// returns false.
func Traverse(g *Grid, from, to Vec2, fn func(col, row int) bool) {
	col, row := g.ToTile(from)
	if !fn(col, row) {
		return
	}
	if !from.Finite() || !to.Finite() {
		return
	}
	d := to.Sub(from)
	length := d.Len()
	if length == 0 {
		return
	}
	dir := d.Scale(1 / length)
	stepX, deltaX, sideX := axis(from.X, dir.X, col, g.tileSize)
	stepY, deltaY, sideY := axis(from.Y, dir.Y, row, g.tileSize)
	for {
		if sideX < sideY {
			if sideX > length {
				return
			}
			col += stepX
			sideX += deltaX
		} else {
			if sideY > length {
				return
			}
			row += stepY
			sideY += deltaY
		}
		if !fn(col, row) {
			return
		}
	}
}
