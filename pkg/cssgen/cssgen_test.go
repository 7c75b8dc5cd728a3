package cssgen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/widgetspec/pkg/color"
)

func TestBoxShadow(t *testing.T) {
	got, err := BoxShadow(
		Shadow{OffsetX: 0, OffsetY: 4, Blur: 6, Spread: -1, Color: "#000", Opacity: 0.1},
		Shadow{OffsetY: 2, Blur: 4, Color: "rgb(255, 0, 0)", Inset: true},
	)
	require.NoError(t, err)
	assert.Equal(t, "0 4px 6px -1px rgba(0, 0, 0, 0.1), inset 0 2px 4px 0 #FF0000", got)
}

func TestBoxShadow_Errors(t *testing.T) {
	_, err := BoxShadow()
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = BoxShadow(Shadow{Blur: -1, Color: "#000"})
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = BoxShadow(Shadow{Color: "nope"})
	assert.True(t, errors.Is(err, color.ErrInvalidColor))

	_, err = BoxShadow(Shadow{Color: "#000", Opacity: 2})
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestGradient_Linear(t *testing.T) {
	got, err := Gradient(GradientSpec{
		Angle: -45,
		Stops: []Stop{At("#ff0000", 0), {Color: "#00f"}, At("hsl(120, 100%, 25%)", 100)},
	})
	require.NoError(t, err)
	assert.Equal(t, "linear-gradient(315deg, #FF0000 0%, #0000FF, #008000 100%)", got)
}

func TestGradient_Radial(t *testing.T) {
	got, err := Gradient(GradientSpec{
		Kind:  GradientRadial,
		Shape: "circle",
		Stops: []Stop{At("#fff", 0), At("#000", 75.5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "radial-gradient(circle, #FFFFFF 0%, #000000 75.5%)", got)
}

func TestGradient_ImplicitPositions(t *testing.T) {
	var spec GradientSpec
	require.NoError(t, yaml.Unmarshal([]byte("angle: 90\nstops:\n  - color: \"#f00\"\n  - color: \"#00f\"\n"), &spec))
	got, err := Gradient(spec)
	require.NoError(t, err)
	assert.Equal(t, "linear-gradient(90deg, #FF0000, #0000FF)", got)

	spec = GradientSpec{}
	require.NoError(t, json.Unmarshal([]byte(`{"stops":[{"color":"#fff","position":0},{"color":"#000"}]}`), &spec))
	got, err = Gradient(spec)
	require.NoError(t, err)
	assert.Equal(t, "linear-gradient(0deg, #FFFFFF 0%, #000000)", got)
}

func TestGradient_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec GradientSpec
	}{
		{"one stop", GradientSpec{Stops: []Stop{{Color: "#fff"}}}},
		{"descending", GradientSpec{Stops: []Stop{At("#fff", 50), At("#000", 10)}}},
		{"over 100", GradientSpec{Stops: []Stop{At("#fff", 0), At("#000", 120)}}},
		{"negative", GradientSpec{Stops: []Stop{At("#fff", -5), At("#000", 100)}}},
		{"bad kind", GradientSpec{Kind: "conic", Stops: []Stop{{Color: "#fff"}, {Color: "#000"}}}},
		{"bad shape", GradientSpec{Kind: GradientRadial, Shape: "square", Stops: []Stop{{Color: "#fff"}, {Color: "#000"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Gradient(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestKeyframes(t *testing.T) {
	got, err := Keyframes("fade-in", []Keyframe{
		{Percent: 100, Properties: map[string]string{"opacity": "1", "transform": "none"}},
		{Percent: 0, Properties: map[string]string{"transform": "translateY(8px)", "opacity": "0"}},
	})
	require.NoError(t, err)

	want := "@keyframes fade-in {\n" +
		"  0% {\n    opacity: 0;\n    transform: translateY(8px);\n  }\n" +
		"  100% {\n    opacity: 1;\n    transform: none;\n  }\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestKeyframes_Errors(t *testing.T) {
	_, err := Keyframes("1bad", []Keyframe{{Percent: 0}})
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = Keyframes("spin", nil)
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = Keyframes("spin", []Keyframe{{Percent: 50}, {Percent: 50}})
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = Keyframes("spin", []Keyframe{{Percent: 101}})
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestPxToRemTable(t *testing.T) {
	rows, err := PxToRemTable(0, 8, 24, 15)
	require.NoError(t, err)
	assert.Equal(t, []RemRow{
		{Px: 8, Rem: 0.5, CSS: "0.5rem"},
		{Px: 24, Rem: 1.5, CSS: "1.5rem"},
		{Px: 15, Rem: 0.9375, CSS: "0.9375rem"},
	}, rows)

	rows, err = PxToRemTable(10, DefaultTableSizes...)
	require.NoError(t, err)
	assert.Len(t, rows, len(DefaultTableSizes))
	assert.Equal(t, "1.6rem", rows[4].CSS)

	_, err = PxToRemTable(-4, 16)
	require.Error(t, err)
}
