package calc

import (
	"math"
	"sort"
	"strings"
)

// DefaultRootFontPx is the browser default root font size.
const DefaultRootFontPx = 16.0

// PxToRem converts pixels to rem for the given root font size.
// A zero root size means DefaultRootFontPx.
func PxToRem(px, rootPx float64) (float64, error) {
	root, err := rootSize(rootPx)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, invalid("px", "must be a finite number")
	}
	return px / root, nil
}

// RemToPx converts rem to pixels for the given root font size.
func RemToPx(rem, rootPx float64) (float64, error) {
	root, err := rootSize(rootPx)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(rem) || math.IsInf(rem, 0) {
		return 0, invalid("rem", "must be a finite number")
	}
	return rem * root, nil
}

func rootSize(rootPx float64) (float64, error) {
	switch {
	case rootPx == 0:
		return DefaultRootFontPx, nil
	case rootPx < 0 || math.IsNaN(rootPx) || math.IsInf(rootPx, 0):
		return 0, invalid("root_px", "must be a positive number")
	default:
		return rootPx, nil
	}
}

// Dimension groups units that can be converted into each other.
type Dimension string

const (
	DimensionLength      Dimension = "length"
	DimensionMass        Dimension = "mass"
	DimensionTemperature Dimension = "temperature"
)

type unitDef struct {
	dim Dimension
	// factor converts one unit into the dimension's base unit (metre, kilogram).
	factor float64
}

var units = map[string]unitDef{
	"mm": {DimensionLength, 0.001},
	"cm": {DimensionLength, 0.01},
	"m":  {DimensionLength, 1},
	"km": {DimensionLength, 1000},
	"in": {DimensionLength, 0.0254},
	"ft": {DimensionLength, 0.3048},
	"yd": {DimensionLength, 0.9144},
	"mi": {DimensionLength, 1609.344},

	"g":  {DimensionMass, 0.001},
	"kg": {DimensionMass, 1},
	"t":  {DimensionMass, 1000},
	"oz": {DimensionMass, 0.028349523125},
	"lb": {DimensionMass, 0.45359237},

	"c": {DimensionTemperature, 0},
	"f": {DimensionTemperature, 0},
	"k": {DimensionTemperature, 0},
}

// Units lists the supported unit symbols of a dimension, sorted.
func Units(dim Dimension) []string {
	var out []string
	for sym, def := range units {
		if def.dim == dim {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

// ConvertUnit converts value between two units of the same dimension.
// Symbols are case-insensitive.
func ConvertUnit(value float64, from, to string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalid("value", "must be a finite number")
	}

	from, to = strings.ToLower(from), strings.ToLower(to)
	src, ok := units[from]
	if !ok {
		return 0, invalid("from", "unknown unit %q", from)
	}
	dst, ok := units[to]
	if !ok {
		return 0, invalid("to", "unknown unit %q", to)
	}
	if src.dim != dst.dim {
		return 0, invalid("to", "cannot convert %s to %s", src.dim, dst.dim)
	}

	if src.dim == DimensionTemperature {
		return convertTemperature(value, from, to)
	}
	return value * src.factor / dst.factor, nil
}

func convertTemperature(value float64, from, to string) (float64, error) {
	var kelvin float64
	switch from {
	case "c":
		kelvin = value + 273.15
	case "f":
		kelvin = (value-32)*5/9 + 273.15
	case "k":
		kelvin = value
	}
	if kelvin < 0 {
		return 0, invalid("value", "is below absolute zero")
	}

	switch to {
	case "c":
		return kelvin - 273.15, nil
	case "f":
		return (kelvin-273.15)*9/5 + 32, nil
	default:
		return kelvin, nil
	}
}
