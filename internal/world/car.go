package world

// Move reports the outcome of a Drive.
type Move struct {
	From Position
	To   Position
	// Moved is false when the cell ahead was a wall or off the grid.
	Moved bool
	// Finished is true when the car arrived on the goal.
	Finished bool
}

// Car is the single agent on a grid.
type Car struct {
	grid    *Grid
	cell    *Cell
	heading Direction
}

// Position returns the coordinate of the occupied cell.
func (c *Car) Position() Position { return c.cell.pos }

// Heading returns the direction the car faces.
func (c *Car) Heading() Direction { return c.heading }

// place moves the car onto p without driving, used at start and on reset.
func (c *Car) place(p Position, heading Direction) {
	if c.cell != nil {
		c.cell.vacate()
	}
	cell, _ := c.grid.Cell(p)
	c.cell = cell
	c.heading = heading
	c.cell.occupy(heading)
}

func (c *Car) ahead() (*Cell, bool) {
	return c.grid.Cell(c.cell.pos.Step(c.heading))
}

// Drive moves one cell forward. Walls and the grid edge stop the car in
// place; that is reported through Move.Moved, never as an error.
func (c *Car) Drive() Move {
	from := c.cell.pos
	next, ok := c.ahead()
	if !ok || next.flags.Wall {
		return Move{From: from, To: from}
	}

	c.cell.vacate()
	next.occupy(c.heading)
	c.cell = next

	return Move{From: from, To: next.pos, Moved: true, Finished: next.flags.Finish}
}

// TurnLeft rotates counter-clockwise and returns the new heading.
func (c *Car) TurnLeft() Direction {
	c.heading = c.heading.Left()
	c.cell.flags.Facing = c.heading
	return c.heading
}

// TurnRight rotates clockwise and returns the new heading.
func (c *Car) TurnRight() Direction {
	c.heading = c.heading.Right()
	c.cell.flags.Facing = c.heading
	return c.heading
}

// PickUpCredit takes the credit from the current cell if there is one.
func (c *Car) PickUpCredit() bool {
	return c.cell.takeCredit()
}

// OnCredit reports whether the current cell holds a credit.
func (c *Car) OnCredit() bool { return c.cell.flags.Credit }

// OnFinish reports whether the current cell is the goal.
func (c *Car) OnFinish() bool { return c.cell.flags.Finish }

// WallAhead reports whether the next cell along the heading is a wall or
// outside the grid.
func (c *Car) WallAhead() bool {
	next, ok := c.ahead()
	return !ok || next.flags.Wall
}
