package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mazecast/internal/raycast"
)

var (
	ceilingColor = color.RGBA{18, 20, 32, 255}
	floorColor   = color.RGBA{44, 40, 36, 255}
	fogColor     = color.RGBA{0, 0, 0, 255}
	exploredDim  = 0.35
	rayColor     = color.RGBA{255, 220, 90, 160}
	playerColor  = color.RGBA{255, 0, 0, 255}
)

// wallPalette is indexed by cell value; 1 is a plain wall.
var wallPalette = [...]color.RGBA{
	{0, 0, 0, 255},
	{110, 120, 170, 255},
	{190, 70, 60, 255},
	{70, 170, 90, 255},
	{200, 170, 60, 255},
	{80, 150, 200, 255},
	{170, 90, 180, 255},
	{220, 130, 60, 255},
	{140, 140, 140, 255},
	{230, 230, 230, 255},
}

// wallColor returns the palette entry for a cell value; values outside the
// palette draw as a plain wall.
func wallColor(v int) color.RGBA {
	if v < 1 || v >= len(wallPalette) {
		return wallPalette[1]
	}
	return wallPalette[v]
}

// Draw renders the wall columns and the optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ceilingColor)
	vector.DrawFilledRect(screen, 0, h/2, w, h/2, floorColor, false)
	g.drawColumns(screen)

	if g.showMinimap {
		g.drawMinimap(screen)
	}
	if g.debug {
		p := g.frame.Player
		debugMsg := fmt.Sprintf("FPS: %.1f TPS: %.1f\nCast: %.2f ms (%s, %s, %d rays)\nPos: %.1f, %.1f  Heading: %.1f°\nFrame: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.lastCast.Seconds()*1000, g.sim.Config().Caster, g.frame.Backend, len(g.frame.Rays),
			p.Position.X, p.Position.Y, degrees(p.Heading), g.frame.Seq)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
	ebitenutil.DebugPrintAt(screen, "WASD/arrows move, Q/E turn, M map, R rays, F fog, Esc quit", 4, h-16)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return w, h }

// drawColumns draws one vertical slice per ray.
func (g *Game) drawColumns(screen *ebiten.Image) {
	grid := g.sim.Grid()
	rays := g.frame.Rays
	for i := range rays {
		s := g.proj.Slice(rays[i], g.frame.Player.Heading)
		if !s.Visible {
			continue
		}
		x0, x1 := g.proj.Columns(i, len(rays))
		v, _ := grid.Value(rays[i].Col, rays[i].Row)
		clr := shadeColor(wallColor(v), s.Brightness)
		vector.DrawFilledRect(screen, float32(x0), float32(s.Top), float32(x1-x0), float32(s.Bottom-s.Top), clr, false)
	}
}

// drawMinimap renders the grid, the ray fan and the player in the top-right
// corner.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	grid := g.sim.Grid()
	ox := w - grid.Width()*minimapCell - minimapMargin
	oy := minimapMargin
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			var clr color.RGBA
			v, _ := grid.Value(col, row)
			if v != 0 {
				clr = wallColor(v)
			} else {
				clr = color.RGBA{60, 60, 60, 255}
			}
			if g.occlude {
				switch {
				case g.fog.visible(col, row):
				case g.fog.seen(col, row):
					clr = shadeColor(clr, exploredDim)
				default:
					clr = fogColor
				}
			}
			vector.DrawFilledRect(screen, float32(ox+col*minimapCell), float32(oy+row*minimapCell),
				minimapCell, minimapCell, clr, false)
		}
	}

	scale := float64(minimapCell) / grid.TileSize()
	toMap := func(p raycast.Vec2) (int, int) {
		return ox + int(math.Round(p.X*scale)), oy + int(math.Round(p.Y*scale))
	}
	px, py := toMap(g.frame.Player.Position)
	if g.showRays {
		for i := 0; i < len(g.frame.Rays); i += minimapRayStride {
			hx, hy := toMap(g.frame.Rays[i].Point)
			drawLine(screen, px, py, hx, hy, rayColor)
		}
	}
	vector.DrawFilledCircle(screen, float32(px), float32(py), 2, playerColor, false)
	fx, fy := toMap(g.frame.Player.Position.Add(g.frame.Player.Forward().Scale(grid.TileSize())))
	drawLine(screen, px, py, fx, fy, playerColor)
}

// shadeColor scales the RGB channels of c by brightness.
func shadeColor(c color.RGBA, brightness float64) color.RGBA {
	b := math.Max(0, math.Min(1, brightness))
	return color.RGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: c.A,
	}
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 int, clr color.Color) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			screen.Set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
