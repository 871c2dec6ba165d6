package testutil

import "github.com/specialistvlad/cargogo/internal/world"

// Corridor is a 7x3 maze walled all around, the car at (1,1) facing right
// and the goal at (5,1).
func Corridor() *world.Maze {
	return &world.Maze{
		Name:    "corridor",
		Width:   7,
		Height:  3,
		Start:   world.Pos(1, 1),
		Heading: world.Right,
		Goal:    world.Pos(5, 1),
		Fills: []world.Fill{
			world.Rect(world.FillWall, world.Pos(0, 0), world.Pos(6, 0)),
			world.Rect(world.FillWall, world.Pos(0, 2), world.Pos(6, 2)),
			world.Point(world.FillWall, world.Pos(0, 1)),
			world.Point(world.FillWall, world.Pos(6, 1)),
		},
	}
}

// Box is a 3x3 maze whose only open cell is the centre, so every heading
// has a wall ahead.
func Box() *world.Maze {
	return &world.Maze{
		Name:    "box",
		Width:   3,
		Height:  3,
		Start:   world.Pos(1, 1),
		Heading: world.Up,
		Goal:    world.Pos(1, 1),
		Fills: []world.Fill{
			world.Rect(world.FillWall, world.Pos(0, 0), world.Pos(2, 0)),
			world.Rect(world.FillWall, world.Pos(0, 2), world.Pos(2, 2)),
			world.Point(world.FillWall, world.Pos(0, 1)),
			world.Point(world.FillWall, world.Pos(2, 1)),
		},
	}
}

// Classic is the 15x15 level the game ships with: a ring road around a solid
// block with one credit on the right-hand side.
func Classic() *world.Maze {
	return &world.Maze{
		Name:    "classic",
		Width:   15,
		Height:  15,
		Start:   world.Pos(1, 1),
		Heading: world.Right,
		Goal:    world.Pos(1, 13),
		Fills: []world.Fill{
			world.Rect(world.FillWall, world.Pos(0, 0), world.Pos(14, 0)),
			world.Rect(world.FillWall, world.Pos(14, 0), world.Pos(14, 14)),
			world.Rect(world.FillWall, world.Pos(0, 1), world.Pos(0, 14)),
			world.Rect(world.FillWall, world.Pos(1, 14), world.Pos(13, 14)),
			world.Rect(world.FillWall, world.Pos(1, 2), world.Pos(12, 12)),
			world.Point(world.FillCredit, world.Pos(13, 3)),
		},
	}
}
