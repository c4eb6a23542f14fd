package main

import "mazecast/internal/raycast"

// fogMask tracks which map tiles the player can see this frame and which they
// have ever seen. Visibility uses a generation stamp so a refresh never has to
// clear the whole mask.
type fogMask struct {
	cols, rows   int
	visibleStamp []uint32
	visibleGen   uint32
	explored     []bool
}

func newFogMask(cols, rows int) *fogMask {
	return &fogMask{
		cols:         cols,
		rows:         rows,
		visibleStamp: make([]uint32, cols*rows),
		explored:     make([]bool, cols*rows),
	}
}

// refresh marks every tile crossed by the frame's rays, up to and including
// the wall each ray struck.
func (f *fogMask) refresh(g *raycast.Grid, frame raycast.Frame) {
	if f.visibleGen == ^uint32(0) {
		for i := range f.visibleStamp {
			f.visibleStamp[i] = 0
		}
		f.visibleGen = 1
	} else {
		f.visibleGen++
	}
	origin := frame.Player.Position
	for i := range frame.Rays {
		ray := &frame.Rays[i]
		raycast.Traverse(g, origin, ray.Point, func(col, row int) bool {
			if !f.mark(col, row) {
				return false
			}
			return g.CellAt(col, row) != raycast.Wall
		})
		if ray.Wall {
			f.mark(ray.Col, ray.Row)
		}
	}
}

// mark stamps a tile; it reports false outside the map.
func (f *fogMask) mark(col, row int) bool {
	if col < 0 || col >= f.cols || row < 0 || row >= f.rows {
		return false
	}
	idx := row*f.cols + col
	f.visibleStamp[idx] = f.visibleGen
	f.explored[idx] = true
	return true
}

// visible reports whether the tile was crossed by the latest refresh.
func (f *fogMask) visible(col, row int) bool {
	if col < 0 || col >= f.cols || row < 0 || row >= f.rows {
		return false
	}
	return f.visibleGen != 0 && f.visibleStamp[row*f.cols+col] == f.visibleGen
}

// seen reports whether the tile was ever visible.
func (f *fogMask) seen(col, row int) bool {
	if col < 0 || col >= f.cols || row < 0 || row >= f.rows {
		return false
	}
	return f.explored[row*f.cols+col]
}
