package world

import "strings"

// Grid is a fixed-size matrix of cells. The set of cells never changes after
// construction; only their flags do.
type Grid struct {
	width  int
	height int
	cells  [][]*Cell // indexed [y][x]
}

func newGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, cells: make([][]*Cell, height)}
	for y := 0; y < height; y++ {
		g.cells[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			g.cells[y][x] = newCell(Position{X: x, Y: y})
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Cell returns the cell at p, or false when p is off the grid.
func (g *Grid) Cell(p Position) (*Cell, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return nil, false
	}
	return g.cells[p.Y][p.X], true
}

// Credits counts the credits still lying on the grid.
func (g *Grid) Credits() int {
	n := 0
	g.each(func(c *Cell) {
		if c.flags.Credit {
			n++
		}
	})
	return n
}

func (g *Grid) each(fn func(*Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// paint applies the maze's fills and goal onto freshly cleared cells.
func (g *Grid) paint(m *Maze) {
	g.each(func(c *Cell) { c.reset() })
	for _, f := range m.Fills {
		f.cells(func(p Position) {
			c, ok := g.Cell(p)
			if !ok {
				return
			}
			switch f.Kind {
			case FillWall:
				c.flags.Wall = true
			case FillCredit:
				c.flags.Credit = true
			}
		})
	}
	if goal, ok := g.Cell(m.Goal); ok {
		goal.flags.Finish = true
	}
}

// String draws the grid one row per line: '#' wall, '$' credit, 'F' finish,
// an arrow for the car and '.' for open floor.
func (g *Grid) String() string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			switch {
			case c.flags.Occupied:
				sb.WriteRune(c.flags.Facing.Glyph())
			case c.flags.Wall:
				sb.WriteByte('#')
			case c.flags.Credit:
				sb.WriteByte('$')
			case c.flags.Finish:
				sb.WriteByte('F')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
