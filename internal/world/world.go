package world

import "fmt"

// World pairs a Grid with its Car and remembers the Maze it was built from.
type World struct {
	maze Maze
	grid *Grid
	car  *Car
}

// New validates the description and builds the grid and car.
func New(m *Maze) (*World, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	desc := *m
	desc.Fills = append([]Fill(nil), m.Fills...)

	w := &World{maze: desc, grid: newGrid(desc.Width, desc.Height)}
	w.car = &Car{grid: w.grid}
	w.build()
	return w, nil
}

// MustNew is New for fixtures that are known to be valid.
func MustNew(m *Maze) *World {
	w, err := New(m)
	if err != nil {
		panic(fmt.Sprintf("world: %v", err))
	}
	return w
}

func (w *World) build() {
	w.car.cell = nil
	w.grid.paint(&w.maze)
	w.car.place(w.maze.Start, w.maze.Heading)
}

// Reset restores every cell's flags from the description and puts the car
// back on the start. Cells and the car keep their identity.
func (w *World) Reset() {
	w.build()
}

// Grid returns the world's grid.
func (w *World) Grid() *Grid { return w.grid }

// Car returns the world's car.
func (w *World) Car() *Car { return w.car }

// Maze returns a copy of the description the world was built from.
func (w *World) Maze() Maze { return w.maze }
