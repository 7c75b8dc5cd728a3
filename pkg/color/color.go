// Package color parses CSS color notations and converts them between the
// color spaces shown by the color converter widget.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for input that is not a recognised color notation.
var ErrInvalidColor = errors.New("invalid color")

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B) }

// HSL holds hue in degrees and saturation/lightness in percent.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", num(c.H), num(c.S), num(c.L))
}

// CMYK holds each channel in percent.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%s%%, %s%%, %s%%, %s%%)", num(c.C), num(c.M), num(c.Y), num(c.K))
}

// XYZ is CIE 1931 XYZ (D65), scaled so that white has Y = 100.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LAB is CIE L*a*b* (D65).
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Conversion is one color in every supported representation.
type Conversion struct {
	Input string `json:"input"`
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
	HSL   HSL    `json:"hsl"`
	CMYK  CMYK   `json:"cmyk"`
	XYZ   XYZ    `json:"xyz"`
	LAB   LAB    `json:"lab"`
}

var (
	rgbFunc = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
	hslFunc = regexp.MustCompile(`^hsla?\(\s*(-?[\d.]+)(?:deg)?\s*[, ]\s*([\d.]+)%\s*[, ]\s*([\d.]+)%\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
)

// Parse reads #rgb, #rrggbb (with or without #), rgb(r, g, b) and
// hsl(h, s%, l%). Alpha components are accepted and ignored.
func Parse(s string) (colorful.Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(in, "rgb"):
		return parseRGB(in, s)
	case strings.HasPrefix(in, "hsl"):
		return parseHSL(in, s)
	default:
		return parseHex(in, s)
	}
}

func parseHex(in, orig string) (colorful.Color, error) {
	hex := strings.TrimPrefix(in, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return c, nil
}

func parseRGB(in, orig string) (colorful.Color, error) {
	m := rgbFunc.FindStringSubmatch(in)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	var ch [3]uint8
	for i := range ch {
		v, _ := strconv.Atoi(m[i+1])
		if v > 255 {
			return colorful.Color{}, fmt.Errorf("%w: channel %d out of range in %q", ErrInvalidColor, v, orig)
		}
		ch[i] = uint8(v)
	}
	return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}, nil
}

func parseHSL(in, orig string) (colorful.Color, error) {
	m := hslFunc.FindStringSubmatch(in)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	h, err1 := strconv.ParseFloat(m[1], 64)
	sat, err2 := strconv.ParseFloat(m[2], 64)
	l, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil || sat > 100 || l > 100 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, sat/100, l/100).Clamped(), nil
}

// Convert parses s and renders it in every representation.
func Convert(s string) (Conversion, error) {
	c, err := Parse(s)
	if err != nil {
		return Conversion{}, err
	}
	return FromColor(c, strings.TrimSpace(s)), nil
}

// FromColor renders c in every representation. Values are rounded to two
// decimals so outputs are stable across platforms.
func FromColor(c colorful.Color, input string) Conversion {
	c = c.Clamped()
	r, g, b := c.RGB255()
	// Snap to the 8-bit value so every other space agrees with the hex output.
	c = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	h, s, l := c.Hsl()
	x, y, z := c.Xyz()
	lL, la, lb := c.Lab()

	return Conversion{
		Input: input,
		Hex:   strings.ToUpper(c.Hex()),
		RGB:   RGB{R: r, G: g, B: b},
		HSL:   HSL{H: round2(h), S: round2(s * 100), L: round2(l * 100)},
		CMYK:  toCMYK(c),
		XYZ:   XYZ{X: round2(x * 100), Y: round2(y * 100), Z: round2(z * 100)},
		LAB:   LAB{L: round2(lL * 100), A: round2(la * 100), B: round2(lb * 100)},
	}
}

// toCMYK uses the naive device-independent formula; there is no ICC profile.
func toCMYK(c colorful.Color) CMYK {
	k := 1 - math.Max(c.R, math.Max(c.G, c.B))
	if k >= 1 {
		return CMYK{K: 100}
	}
	return CMYK{
		C: round2((1 - c.R - k) / (1 - k) * 100),
		M: round2((1 - c.G - k) / (1 - k) * 100),
		Y: round2((1 - c.B - k) / (1 - k) * 100),
		K: round2(k * 100),
	}
}

// FromCMYK builds a color from channels given in percent.
func FromCMYK(c, m, y, k float64) (colorful.Color, error) {
	for _, v := range []float64{c, m, y, k} {
		if v < 0 || v > 100 || math.IsNaN(v) {
			return colorful.Color{}, fmt.Errorf("%w: cmyk channel %v outside 0..100", ErrInvalidColor, v)
		}
	}
	kk := 1 - k/100
	return colorful.Color{
		R: (1 - c/100) * kk,
		G: (1 - m/100) * kk,
		B: (1 - y/100) * kk,
	}, nil
}

// Contrast returns the WCAG 2 contrast ratio between two colors (1 to 21).
func Contrast(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return round2((la + 0.05) / (lb + 0.05))
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func round2(v float64) float64 {
	v = math.Round(v*100) / 100
	if v == 0 {
		return 0 // drop negative zero
	}
	return v
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
