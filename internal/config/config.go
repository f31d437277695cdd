package config

import (
	"fmt"
	"os"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStartAngle   = 0.0
	DefaultEndAngle     = 120.0
	DefaultRadius       = 1.0
	DefaultDisplacement = 0.5
	DefaultSegments     = 12
	DefaultSamples      = 50
	DefaultLaw          = "linear"
	DefaultDPI          = 96.0
)

// Config is the user-facing description of a cam. Angles are in degrees,
// lengths in inches.
type Config struct {
	StartAngle   float64      `yaml:"start_angle"`
	EndAngle     float64      `yaml:"end_angle"`
	Radius       float64      `yaml:"radius"`
	Displacement float64      `yaml:"displacement"`
	Segments     int          `yaml:"segments"`
	Samples      int          `yaml:"samples"`
	Law          string       `yaml:"law"`
	Output       OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	DPI      float64 `yaml:"dpi"`
	Points   string  `yaml:"points,omitempty"`
	Friction string  `yaml:"friction,omitempty"`
	PNG      string  `yaml:"png,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		StartAngle:   DefaultStartAngle,
		EndAngle:     DefaultEndAngle,
		Radius:       DefaultRadius,
		Displacement: DefaultDisplacement,
		Segments:     DefaultSegments,
		Samples:      DefaultSamples,
		Law:          DefaultLaw,
		Output: OutputConfig{
			DPI: DefaultDPI,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params normalizes the configuration into radians and resolves the law.
func (c *Config) Params() (geom.Params, error) {
	law, err := geom.ParseLaw(c.Law)
	if err != nil {
		return geom.Params{}, err
	}
	p := geom.Params{
		Base:         c.Radius,
		Displacement: c.Displacement,
		Range:        geom.Degrees(c.StartAngle, c.EndAngle),
		Segments:     c.Segments,
		Law:          law,
	}
	return p, p.Validate()
}

// Validate rejects configurations that cannot produce a cam.
func (c *Config) Validate() error {
	_, err := c.Sampler(false)
	if err != nil {
		return err
	}
	if !(c.Output.DPI > 0) {
		return fmt.Errorf("output.dpi must be positive, got %g", c.Output.DPI)
	}
	return nil
}

// Sampler builds the run configuration for the sampler.
func (c *Config) Sampler(friction bool) (sampler.Config, error) {
	p, err := c.Params()
	if err != nil {
		return sampler.Config{}, err
	}
	sc := sampler.Config{
		Params:            p,
		SamplesPerSegment: c.Samples,
		Friction:          friction,
	}
	return sc, sc.Validate()
}
