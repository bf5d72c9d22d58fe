package app

import (
	"flag"
	"fmt"
	"slices"

	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/field"
)

// MaxBrushRadius is the largest brush radius, in samples, the editor offers.
const MaxBrushRadius = 5

// Config represents the command-line parameters for the editor.
type Config struct {
	Field field.Config

	Scale float64
	TPS   int

	Shape  string
	Radius int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Field:  field.DefaultConfig(),
		Scale:  1,
		TPS:    60,
		Shape:  "circle",
		Radius: 1,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Field.Size, "size", c.Field.Size, "side length of the field")
	fs.IntVar(&c.Field.Chunks, "chunks", c.Field.Chunks, "chunks along each axis")
	fs.IntVar(&c.Field.Resolution, "resolution", c.Field.Resolution, "samples along each chunk axis")
	fs.Float64Var(&c.Field.FeatureAngle, "feature-angle", c.Field.FeatureAngle, "widest corner angle in degrees kept sharp")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "screen pixels per field unit")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Shape, "shape", c.Shape, "initial brush shape")
	fs.IntVar(&c.Radius, "radius", c.Radius, "initial brush radius in samples")
}

// Validate checks the editor settings on top of the field settings.
func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if !slices.Contains(contour.Stencils(), c.Shape) {
		return fmt.Errorf("%w: %q", contour.ErrUnknownStencil, c.Shape)
	}
	if c.Radius < 0 || c.Radius > MaxBrushRadius {
		return fmt.Errorf("brush radius must be within [0, %d], got %d", MaxBrushRadius, c.Radius)
	}
	return nil
}
