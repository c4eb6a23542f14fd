package raycast

// IsWall reports whether p lies in a wall tile. Points outside the grid, and
// non-finite points, are walls. Movement validation and every caster go
// through this predicate.
func (g *Grid) IsWall(p Vec2) bool {
	if !p.Finite() {
		return true
	}
	col, row := g.ToTile(p)
	return g.CellAt(col, row) == Wall
}
