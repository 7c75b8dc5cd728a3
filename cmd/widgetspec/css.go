package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/widgetspec/pkg/cssgen"
	"github.com/gnana997/widgetspec/pkg/util"
)

func newCSSCmd(_ *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Generate box-shadow, gradient and @keyframes CSS",
		Long: `Generate CSS values. Each generator takes flags for the simple case or
--file with a YAML or JSON description ("-" reads standard input).`,
	}
	cmd.AddCommand(newShadowCmd(), newGradientCmd(), newKeyframesCmd())
	return cmd
}

func newShadowCmd() *cobra.Command {
	var (
		layer cssgen.Shadow
		file  string
	)

	cmd := &cobra.Command{
		Use:   "shadow",
		Short: "Render a box-shadow value",
		Example: `  widgetspec css shadow --y 4 --blur 6 --spread -1 --color "#000" --opacity 0.1
  widgetspec css shadow --file layers.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layers := []cssgen.Shadow{layer}
			if file != "" {
				layers = nil
				if err := readSpec(cmd, file, &layers); err != nil {
					return err
				}
			}
			css, err := cssgen.BoxShadow(layers...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "box-shadow: %s;\n", css)
			return nil
		},
	}

	cmd.Flags().Float64Var(&layer.OffsetX, "x", 0, "Horizontal offset in px")
	cmd.Flags().Float64Var(&layer.OffsetY, "y", 0, "Vertical offset in px")
	cmd.Flags().Float64Var(&layer.Blur, "blur", 0, "Blur radius in px")
	cmd.Flags().Float64Var(&layer.Spread, "spread", 0, "Spread radius in px")
	cmd.Flags().StringVar(&layer.Color, "color", "#000000", "Shadow color")
	cmd.Flags().Float64Var(&layer.Opacity, "opacity", 0, "Opacity in 0..1 (0 means opaque)")
	cmd.Flags().BoolVar(&layer.Inset, "inset", false, "Draw the shadow inside the box")
	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON list of shadow layers")
	return cmd
}

func newGradientCmd() *cobra.Command {
	var (
		spec cssgen.GradientSpec
		kind string
		file string
	)

	cmd := &cobra.Command{
		Use:   "gradient [color[@percent]...]",
		Short: "Render a linear or radial gradient",
		Example: `  widgetspec css gradient --angle 90 "#ff0000" "#0000ff"
  widgetspec css gradient --kind radial --shape circle "#fff@0" "#000@75"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				spec = cssgen.GradientSpec{}
				if err := readSpec(cmd, file, &spec); err != nil {
					return err
				}
			} else {
				spec.Kind = cssgen.GradientKind(kind)
				for _, a := range args {
					stop, err := parseStop(a)
					if err != nil {
						return err
					}
					spec.Stops = append(spec.Stops, stop)
				}
			}

			css, err := cssgen.Gradient(spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "background: %s;\n", css)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(cssgen.GradientLinear), "linear or radial")
	cmd.Flags().Float64Var(&spec.Angle, "angle", 180, "Angle in degrees (linear only)")
	cmd.Flags().StringVar(&spec.Shape, "shape", "", "circle or ellipse (radial only)")
	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON gradient description")
	return cmd
}

// keyframesFile is the --file layout of css keyframes.
type keyframesFile struct {
	Name   string            `yaml:"name"`
	Frames []cssgen.Keyframe `yaml:"frames"`
}

func newKeyframesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "keyframes [name]",
		Short: "Render an @keyframes block",
		Long: `Render an @keyframes block from --file, a YAML or JSON document with a
name and a list of frames. A name argument overrides the file's name.`,
		Example: `  widgetspec css keyframes fade-in --file fade.yaml`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			var kf keyframesFile
			if err := readSpec(cmd, file, &kf); err != nil {
				return err
			}
			if len(args) == 1 {
				kf.Name = args[0]
			}

			css, err := cssgen.Keyframes(kf.Name, kf.Frames)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), css)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON keyframes description")
	return cmd
}

// readSpec decodes a YAML (or JSON) document from path, or from stdin when
// path is "-".
func readSpec(cmd *cobra.Command, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = util.ReadMapped(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// parseStop reads "color" or "color@percent".
func parseStop(s string) (cssgen.Stop, error) {
	col, pos, ok := strings.Cut(s, "@")
	if !ok {
		return cssgen.Stop{Color: s}, nil
	}
	p, err := strconv.ParseFloat(pos, 64)
	if err != nil {
		return cssgen.Stop{}, fmt.Errorf("stop %q: %q is not a number", s, pos)
	}
	return cssgen.At(col, p), nil
}
