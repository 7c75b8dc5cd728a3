// Package cssgen assembles the CSS values produced by the box-shadow,
// gradient, keyframes and px-to-rem widgets. Output is deterministic for a
// given input.
package cssgen

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gnana997/widgetspec/pkg/calc"
	"github.com/gnana997/widgetspec/pkg/color"
)

// ErrInvalid is matched by every generator input error.
var ErrInvalid = errors.New("invalid css input")

// Shadow is one box-shadow layer. Lengths are in pixels.
type Shadow struct {
	OffsetX float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
	Blur    float64 `json:"blur" yaml:"blur"`
	Spread  float64 `json:"spread" yaml:"spread"`
	Color   string  `json:"color" yaml:"color"`
	// Opacity in 0..1; zero means fully opaque.
	Opacity float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Inset   bool    `json:"inset,omitempty" yaml:"inset,omitempty"`
}

// BoxShadow renders a box-shadow value from one or more layers.
func BoxShadow(layers ...Shadow) (string, error) {
	if len(layers) == 0 {
		return "", fmt.Errorf("%w: at least one shadow layer is required", ErrInvalid)
	}

	parts := make([]string, 0, len(layers))
	for i, l := range layers {
		if l.Blur < 0 {
			return "", fmt.Errorf("%w: layer %d: blur must not be negative", ErrInvalid, i)
		}
		col, err := cssColor(l.Color, l.Opacity)
		if err != nil {
			return "", fmt.Errorf("layer %d: %w", i, err)
		}

		var b strings.Builder
		if l.Inset {
			b.WriteString("inset ")
		}
		fmt.Fprintf(&b, "%s %s %s %s %s", px(l.OffsetX), px(l.OffsetY), px(l.Blur), px(l.Spread), col)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", "), nil
}

// GradientKind selects linear-gradient or radial-gradient.
type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// Stop is a gradient color stop. Position is a percentage; nil leaves the
// position implicit so the browser spaces the stop evenly.
type Stop struct {
	Color    string   `json:"color" yaml:"color"`
	Position *float64 `json:"position,omitempty" yaml:"position,omitempty"`
}

// At returns a stop at an explicit position.
func At(c string, position float64) Stop {
	return Stop{Color: c, Position: &position}
}

// GradientSpec describes a gradient.
type GradientSpec struct {
	Kind GradientKind `json:"kind" yaml:"kind"`
	// Angle in degrees, linear only.
	Angle float64 `json:"angle" yaml:"angle"`
	// Shape for radial gradients: circle or ellipse (default).
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty"`
	Stops []Stop `json:"stops" yaml:"stops"`
}

// Gradient renders a linear-gradient(...) or radial-gradient(...) value.
// Stops with explicit positions must be in ascending order.
func Gradient(g GradientSpec) (string, error) {
	if len(g.Stops) < 2 {
		return "", fmt.Errorf("%w: a gradient needs at least two stops", ErrInvalid)
	}

	stops := make([]string, 0, len(g.Stops))
	last := math.Inf(-1)
	for i, s := range g.Stops {
		col, err := cssColor(s.Color, 0)
		if err != nil {
			return "", fmt.Errorf("stop %d: %w", i, err)
		}
		if s.Position == nil {
			stops = append(stops, col)
			continue
		}
		pos := *s.Position
		if pos < 0 || pos > 100 {
			return "", fmt.Errorf("%w: stop %d: position %v outside 0..100", ErrInvalid, i, pos)
		}
		if pos < last {
			return "", fmt.Errorf("%w: stop %d: positions must ascend", ErrInvalid, i)
		}
		last = pos
		stops = append(stops, col+" "+num(pos)+"%")
	}

	switch g.Kind {
	case GradientLinear, "":
		angle := math.Mod(g.Angle, 360)
		if angle < 0 {
			angle += 360
		}
		return fmt.Sprintf("linear-gradient(%sdeg, %s)", num(angle), strings.Join(stops, ", ")), nil
	case GradientRadial:
		shape := g.Shape
		if shape == "" {
			shape = "ellipse"
		}
		if shape != "circle" && shape != "ellipse" {
			return "", fmt.Errorf("%w: shape must be circle or ellipse, got %q", ErrInvalid, shape)
		}
		return fmt.Sprintf("radial-gradient(%s, %s)", shape, strings.Join(stops, ", ")), nil
	default:
		return "", fmt.Errorf("%w: unknown gradient kind %q", ErrInvalid, g.Kind)
	}
}

// Keyframe is one step of an animation: a percentage and its declarations.
type Keyframe struct {
	Percent    float64           `json:"percent" yaml:"percent"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// Keyframes renders an @keyframes block. Steps are sorted by percentage and
// declarations by property name.
func Keyframes(name string, frames []Keyframe) (string, error) {
	if !validIdent(name) {
		return "", fmt.Errorf("%w: %q is not a valid animation name", ErrInvalid, name)
	}
	if len(frames) == 0 {
		return "", fmt.Errorf("%w: at least one keyframe is required", ErrInvalid)
	}

	sorted := make([]Keyframe, len(frames))
	copy(sorted, frames)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percent < sorted[j].Percent })

	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {\n", name)
	for i, f := range sorted {
		if f.Percent < 0 || f.Percent > 100 {
			return "", fmt.Errorf("%w: keyframe %v%% outside 0..100", ErrInvalid, f.Percent)
		}
		if i > 0 && f.Percent == sorted[i-1].Percent {
			return "", fmt.Errorf("%w: duplicate keyframe %v%%", ErrInvalid, f.Percent)
		}

		props := make([]string, 0, len(f.Properties))
		for p := range f.Properties {
			props = append(props, p)
		}
		sort.Strings(props)

		fmt.Fprintf(&b, "  %s%% {\n", num(f.Percent))
		for _, p := range props {
			fmt.Fprintf(&b, "    %s: %s;\n", p, f.Properties[p])
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// RemRow is one line of a px→rem lookup table.
type RemRow struct {
	Px  float64 `json:"px"`
	Rem float64 `json:"rem"`
	CSS string  `json:"css"`
}

// PxToRemTable converts each pixel size for the given root font size
// (zero means 16px).
func PxToRemTable(rootPx float64, sizes ...float64) ([]RemRow, error) {
	rows := make([]RemRow, 0, len(sizes))
	for _, size := range sizes {
		rem, err := calc.PxToRem(size, rootPx)
		if err != nil {
			return nil, err
		}
		rem = calc.Round(rem, 4)
		rows = append(rows, RemRow{Px: size, Rem: rem, CSS: num(rem) + "rem"})
	}
	return rows, nil
}

// DefaultTableSizes are the pixel sizes shown when the user gives none.
var DefaultTableSizes = []float64{8, 10, 12, 14, 16, 18, 20, 24, 32, 48, 64}

// cssColor normalizes a color to #RRGGBB, or rgba() when opacity is set.
func cssColor(s string, opacity float64) (string, error) {
	c, err := color.Parse(s)
	if err != nil {
		return "", err
	}
	conv := color.FromColor(c, s)
	switch {
	case opacity < 0 || opacity > 1:
		return "", fmt.Errorf("%w: opacity %v outside 0..1", ErrInvalid, opacity)
	case opacity == 0 || opacity == 1:
		return conv.Hex, nil
	default:
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", conv.RGB.R, conv.RGB.G, conv.RGB.B, num(calc.Round(opacity, 2))), nil
	}
}

func px(v float64) string {
	if v == 0 {
		return "0"
	}
	return num(v) + "px"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validIdent(name string) bool {
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return false
	}
	for _, r := range name {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
