package world

import (
	"errors"
	"fmt"
)

// FillKind tags what a Fill paints onto the grid.
type FillKind string

const (
	FillWall   FillKind = "wall"
	FillCredit FillKind = "credit"
)

// Fill paints an axis-aligned rectangle of cells. A single point is a
// rectangle whose corners coincide.
type Fill struct {
	Kind FillKind
	From Position
	To   Position
}

// Point returns a Fill covering exactly one cell.
func Point(kind FillKind, p Position) Fill {
	return Fill{Kind: kind, From: p, To: p}
}

// Rect returns a Fill covering every cell between the two corners, inclusive.
// The corners may be given in any order.
func Rect(kind FillKind, a, b Position) Fill {
	return Fill{Kind: kind, From: a, To: b}
}

// cells calls fn for every position covered by the fill.
func (f Fill) cells(fn func(Position)) {
	x0, x1 := order(f.From.X, f.To.X)
	y0, y1 := order(f.From.Y, f.To.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Maze describes a level. It is never mutated by the world; Reset rebuilds
// the grid from it.
type Maze struct {
	Name    string
	Width   int
	Height  int
	Start   Position
	Heading Direction
	Goal    Position
	Fills   []Fill
}

// Contains reports whether p lies inside the maze bounds.
func (m *Maze) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Validate checks the description for anything that would make a grid
// impossible to build. All problems are reported together.
func (m *Maze) Validate() error {
	if m == nil {
		return errors.New("maze description is nil")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("maze %q: dimensions must be positive, got %dx%d", m.Name, m.Width, m.Height)
	}

	var errs []error
	if !m.Heading.Valid() {
		errs = append(errs, fmt.Errorf("invalid start heading %q", m.Heading))
	}
	if !m.Contains(m.Start) {
		errs = append(errs, fmt.Errorf("start %s is outside the %dx%d grid", m.Start, m.Width, m.Height))
	}
	if !m.Contains(m.Goal) {
		errs = append(errs, fmt.Errorf("goal %s is outside the %dx%d grid", m.Goal, m.Width, m.Height))
	}
	for i, f := range m.Fills {
		switch f.Kind {
		case FillWall, FillCredit:
		default:
			errs = append(errs, fmt.Errorf("fill #%d: unknown type %q", i, f.Kind))
			continue
		}
		if !m.Contains(f.From) || !m.Contains(f.To) {
			errs = append(errs, fmt.Errorf("fill #%d (%s %s-%s) is outside the grid", i, f.Kind, f.From, f.To))
			continue
		}
		if f.Kind == FillWall && m.Contains(m.Start) {
			f.cells(func(p Position) {
				if p == m.Start {
					errs = append(errs, fmt.Errorf("fill #%d puts a wall on the start position %s", i, m.Start))
				}
			})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("maze %q is invalid: %w", m.Name, errors.Join(errs...))
	}
	return nil
}
