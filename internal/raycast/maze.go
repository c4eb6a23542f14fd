package raycast

import "fmt"

// defaultMaze is the fixed in-memory map. '#' is a plain wall, digits 1-9 are
// tinted walls and '.' is floor.
var defaultMaze = []string{
	"################",
	"#......#.......#",
	"#.##...#..222..#",
	"#.#....#..2....#",
	"#.#..........3.#",
	"#....####....3.#",
	"#.......#......#",
	"###.....#..11..#",
	"#.......#..11..#",
	"#..4444.#......#",
	"#.......####.###",
	"#..............#",
	"#.##.......5...#",
	"#.#........5...#",
	"#.#....#.......#",
	"################",
}

// Default start: tile (1, 1) facing +x.
const (
	defaultStartCol = 1
	defaultStartRow = 1
)

// DefaultMaze returns a copy of the built-in map rows.
func DefaultMaze() []string {
	rows := make([]string, len(defaultMaze))
	copy(rows, defaultMaze)
	return rows
}

// ParseGrid builds a grid from equal-length text rows.
func ParseGrid(rows []string, tileSize float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	width := len(rows[0])
	cells := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, y, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			switch ch := row[x]; {
			case ch == '.' || ch == ' ':
				cells = append(cells, 0)
			case ch == '#':
				cells = append(cells, 1)
			case ch >= '1' && ch <= '9':
				cells = append(cells, int(ch-'0'))
			default:
				return nil, fmt.Errorf("%w: unexpected %q at column %d row %d", ErrInvalidGrid, ch, x, y)
			}
		}
	}
	return NewGrid(width, len(rows), tileSize, cells)
}
