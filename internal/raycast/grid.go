package raycast

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidGrid is wrapped by every grid construction failure.
var ErrInvalidGrid = errors.New("invalid grid")

// Cell classifies one tile of the grid.
type Cell uint8

const (
	Empty Cell = iota
	Wall
)

func (c Cell) String() string {
	if c == Wall {
		return "wall"
	}
	return "empty"
}

// Grid is an immutable row-major tile map. A zero cell value is empty, any
// other value is a wall. Space outside the grid behaves as wall.
type Grid struct {
	width    int
	height   int
	tileSize float64
	cells    []int
}

// NewGrid validates the shape and copies cells into a new Grid.
func NewGrid(width, height int, tileSize float64, cells []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidGrid, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidGrid, len(cells), width, height)
	}
	if !(tileSize > 0) || math.IsInf(tileSize, 0) {
		return nil, fmt.Errorf("%w: tile size %v must be positive and finite", ErrInvalidGrid, tileSize)
	}
	owned := make([]int, len(cells))
	copy(owned, cells)
	return &Grid{width: width, height: height, tileSize: tileSize, cells: owned}, nil
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (col, row) addresses a tile of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// CellAt returns the kind of tile at (col, row); out-of-grid tiles are Wall.
func (g *Grid) CellAt(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Wall
	}
	if g.cells[row*g.width+col] != 0 {
		return Wall
	}
	return Empty
}

// Value returns the raw cell value, used by renderers to tint walls.
// ok is false outside the grid.
func (g *Grid) Value(col, row int) (v int, ok bool) {
	if !g.InBounds(col, row) {
		return 0, false
	}
	return g.cells[row*g.width+col], true
}

// ToWorld returns the top-left corner of tile (col, row).
func (g *Grid) ToWorld(col, row int) Vec2 {
	return Vec2{X: float64(col) * g.tileSize, Y: float64(row) * g.tileSize}
}

// TileCenter returns the center of tile (col, row).
func (g *Grid) TileCenter(col, row int) Vec2 {
	half := g.tileSize / 2
	return g.ToWorld(col, row).Add(Vec2{X: half, Y: half})
}

// ToTile maps a world point to the tile containing it.
func (g *Grid) ToTile(p Vec2) (col, row int) {
	return floorIndex(p.X / g.tileSize), floorIndex(p.Y / g.tileSize)
}

// floorIndex floors v into an int, saturating so that huge or NaN inputs land
// outside any grid instead of wrapping.
func floorIndex(v float64) int {
	f := math.Floor(v)
	switch {
	case math.IsNaN(f), f < math.MinInt32:
		return math.MinInt32
	case f > math.MaxInt32:
		return math.MaxInt32
	}
	return int(f)
}

// AppendCells appends the cell values as int32 to dst, for device uploads.
func (g *Grid) AppendCells(dst []int32) []int32 {
	for _, v := range g.cells {
		dst = append(dst, int32(v))
	}
	return dst
}

// Fingerprint hashes the grid shape and contents.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(g.width))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(g.height))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(g.tileSize))
	_, _ = d.Write(buf[:])
	for _, v := range g.cells {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
