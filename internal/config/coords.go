package config

import (
	"fmt"

	"github.com/specialistvlad/cargogo/internal/world"
)

// Position turns an [x, y] pair into a world.Position.
func Position(field string, xy []int) (world.Position, error) {
	if len(xy) != 2 {
		return world.Position{}, fmt.Errorf("%s must be an [x, y] pair, got %d values", field, len(xy))
	}
	return world.Pos(xy[0], xy[1]), nil
}

// Fill builds a world.Fill of the named kind from either a single position
// or a rectangle given as two corners. Exactly one of pos and rect is set.
func Fill(kind string, pos []int, rect [][]int) (world.Fill, error) {
	k := world.FillKind(kind)
	switch k {
	case world.FillWall, world.FillCredit:
	default:
		return world.Fill{}, fmt.Errorf("unknown fill type %q", kind)
	}

	switch {
	case pos != nil && rect != nil:
		return world.Fill{}, fmt.Errorf("%s fill sets both pos and rect", kind)
	case pos != nil:
		p, err := Position("pos", pos)
		if err != nil {
			return world.Fill{}, err
		}
		return world.Point(k, p), nil
	case rect != nil:
		if len(rect) != 2 {
			return world.Fill{}, fmt.Errorf("rect must hold two corners, got %d", len(rect))
		}
		a, err := Position("rect corner", rect[0])
		if err != nil {
			return world.Fill{}, err
		}
		b, err := Position("rect corner", rect[1])
		if err != nil {
			return world.Fill{}, err
		}
		return world.Rect(k, a, b), nil
	}
	return world.Fill{}, fmt.Errorf("%s fill needs pos or rect", kind)
}
