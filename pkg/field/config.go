package field

import (
	"fmt"
	"strconv"

	"mesh-squares/pkg/contour"
)

// Config controls the field dimensions and how finely it is sampled.
type Config struct {
	// Size is the side length of the whole field in field units.
	Size float64
	// Chunks is the number of grids along each axis.
	Chunks int
	// Resolution is the number of samples along each axis of one grid.
	Resolution int
	// FeatureAngle is the widest corner angle, in degrees, that is still
	// reconstructed as a sharp feature.
	FeatureAngle float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:         640,
		Chunks:       2,
		Resolution:   8,
		FeatureAngle: contour.DefaultFeatureAngle,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["chunks"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Chunks = parsed
		}
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Resolution = parsed
		}
	}
	if v, ok := cfg["feature_angle"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 180 {
			c.FeatureAngle = parsed
		}
	}
	return c
}

// Validate reports the first setting that cannot build a field.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("field size must be positive, got %g", c.Size)
	case c.Chunks <= 0:
		return fmt.Errorf("chunk count must be positive, got %d", c.Chunks)
	case c.Resolution <= 0:
		return fmt.Errorf("chunk resolution must be positive, got %d", c.Resolution)
	case c.FeatureAngle < 0 || c.FeatureAngle > 180:
		return fmt.Errorf("feature angle must be within [0, 180], got %g", c.FeatureAngle)
	}
	return nil
}
