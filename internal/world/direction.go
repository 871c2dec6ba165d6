package world

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal headings.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists every heading in clockwise order starting from Up.
var Directions = []Direction{Up, Right, Down, Left}

// ParseDirection accepts the long names and the single letter shorthand
// (u, d, l, r), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be one of up, down, left, right", s)
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Left returns the heading after a 90 degree counter-clockwise turn.
func (d Direction) Left() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	case Right:
		return Up
	}
	return d
}

// Right returns the heading after a 90 degree clockwise turn.
func (d Direction) Right() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	}
	return d
}

// Delta is the one-cell offset along d. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Glyph is the arrow used for the car in Grid.String.
func (d Direction) Glyph() rune {
	switch d {
	case Up:
		return '^'
	case Down:
		return 'v'
	case Left:
		return '<'
	case Right:
		return '>'
	}
	return '?'
}
