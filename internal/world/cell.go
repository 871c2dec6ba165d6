package world

// Flags is a copy of a cell's state, handy for comparisons in tests and for
// status snapshots.
type Flags struct {
	Wall     bool
	Credit   bool
	Finish   bool
	Occupied bool
	// Facing is only set on the occupied cell.
	Facing Direction
}

// Cell is a single square of the grid.
type Cell struct {
	pos   Position
	flags Flags
}

func newCell(pos Position) *Cell {
	return &Cell{pos: pos}
}

// Pos returns the cell's coordinate.
func (c *Cell) Pos() Position { return c.pos }

// IsWall reports whether the car can never enter this cell.
func (c *Cell) IsWall() bool { return c.flags.Wall }

// HasCredit reports whether a credit is waiting to be picked up here.
func (c *Cell) HasCredit() bool { return c.flags.Credit }

// IsFinish reports whether this is the goal.
func (c *Cell) IsFinish() bool { return c.flags.Finish }

// IsOccupied reports whether the car is on this cell.
func (c *Cell) IsOccupied() bool { return c.flags.Occupied }

// Flags returns a copy of the cell's flags.
func (c *Cell) Flags() Flags { return c.flags }

// takeCredit clears the credit flag and reports whether there was one.
func (c *Cell) takeCredit() bool {
	if !c.flags.Credit {
		return false
	}
	c.flags.Credit = false
	return true
}

func (c *Cell) occupy(heading Direction) {
	c.flags.Occupied = true
	c.flags.Facing = heading
}

func (c *Cell) vacate() {
	c.flags.Occupied = false
	c.flags.Facing = ""
}

func (c *Cell) reset() {
	c.flags = Flags{}
}
