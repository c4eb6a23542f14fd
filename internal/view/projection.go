// Package view turns a frame's ray distances into wall slices. It is shared by
// the window and terminal frontends and does no drawing itself.
package view

import (
	"math"

	"mazecast/internal/raycast"
)

// sideDim darkens walls struck across a horizontal grid line so corners read.
const sideDim = 0.7

// minPerpendicular keeps a ray that starts against a wall from dividing by zero.
const minPerpendicular = 1e-3

// Projection maps distances onto a screen of Width x Height cells or pixels.
type Projection struct {
	Width       int
	Height      int
	TileSize    float64
	MaxDistance float64
	// PlaneDistance is the distance to the projection plane whose width spans
	// the field of view.
	PlaneDistance float64
}

// NewProjection builds a projection for a screen and field of view.
func NewProjection(width, height int, fov, tileSize, maxDistance float64) Projection {
	return Projection{
		Width:         width,
		Height:        height,
		TileSize:      tileSize,
		MaxDistance:   maxDistance,
		PlaneDistance: float64(width) / 2 / math.Tan(fov/2),
	}
}

// Slice is the vertical wall span drawn for one ray.
type Slice struct {
	Top        int
	Bottom     int // exclusive
	Brightness float64
	Visible    bool
}

// Perpendicular projects distance onto the view direction, removing fisheye.
func Perpendicular(distance, rayAngle, heading float64) float64 {
	return distance * math.Cos(rayAngle-heading)
}

// Slice computes the wall span for ray given the player heading. Rays that
// reached max distance without a hit are not visible.
func (p Projection) Slice(ray raycast.Ray, heading float64) Slice {
	if !ray.Wall {
		return Slice{Top: p.Height / 2, Bottom: p.Height / 2}
	}
	perp := math.Max(Perpendicular(ray.Distance, ray.Angle, heading), minPerpendicular)
	h := p.TileSize * p.PlaneDistance / perp
	mid := float64(p.Height) / 2
	top := int(math.Max(0, math.Floor(mid-h/2)))
	bottom := int(math.Min(float64(p.Height), math.Ceil(mid+h/2)))

	b := Brightness(ray.Distance, p.MaxDistance)
	if ray.Side == raycast.SideY {
		b *= sideDim
	}
	return Slice{Top: top, Bottom: bottom, Brightness: b, Visible: true}
}

// Columns returns the screen columns [x0, x1) covered by ray i of n.
func (p Projection) Columns(i, n int) (x0, x1 int) {
	if n <= 0 {
		return 0, 0
	}
	x0 = i * p.Width / n
	x1 = (i + 1) * p.Width / n
	if x1 <= x0 {
		x1 = x0 + 1
	}
	return x0, x1
}

// Brightness falls off with the square of distance and reaches 0 at
// maxDistance.
func Brightness(distance, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	r := distance / maxDistance
	return math.Max(0, math.Min(1, 1-r*r))
}

// Shade picks a block rune for a wall of the given brightness.
func Shade(brightness float64) rune {
	switch {
	case brightness > 0.75:
		return '█'
	case brightness > 0.5:
		return '▓'
	case brightness > 0.25:
		return '▒'
	case brightness > 0.05:
		return '░'
	}
	return ' '
}

// FloorShade picks a rune for a floor row below the horizon; rows nearer the
// bottom of the screen are closer and denser.
func FloorShade(row, height int) rune {
	half := float64(height) / 2
	if half <= 0 || float64(row) < half {
		return ' '
	}
	b := 1 - (float64(row)-half)/half
	switch {
	case b < 0.25:
		return '#'
	case b < 0.5:
		return 'x'
	case b < 0.75:
		return '.'
	case b < 0.9:
		return '-'
	}
	return ' '
}
