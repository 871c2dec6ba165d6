package hcl

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	pairType = cty.List(cty.Number)
	rectType = cty.List(pairType)
)

// isAbsent reports whether an optional expression was left out. gohcl fills
// missing optional expressions with a static null.
func isAbsent(expr hcl.Expression) (bool, error) {
	if expr == nil {
		return true, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return false, diags
	}
	return val.IsNull(), nil
}

// decodeInts evaluates expr, converts it to want and binds the result into
// target, which must be a pointer to a matching Go slice.
func decodeInts(expr hcl.Expression, want cty.Type, target any) error {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if !val.IsWhollyKnown() {
		return errors.New("value must be known")
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return fmt.Errorf("cannot decode %s: %w", want.FriendlyName(), err)
	}
	return nil
}

// decodePair reads an [x, y] list.
func decodePair(expr hcl.Expression) ([]int, error) {
	var xy []int
	if err := decodeInts(expr, pairType, &xy); err != nil {
		return nil, err
	}
	return xy, nil
}

// decodeRect reads a [[x, y], [x, y]] list.
func decodeRect(expr hcl.Expression) ([][]int, error) {
	var corners [][]int
	if err := decodeInts(expr, rectType, &corners); err != nil {
		return nil, err
	}
	return corners, nil
}
