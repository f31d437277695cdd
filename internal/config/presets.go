package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"worked-example": {
		StartAngle: 0, EndAngle: 200, Radius: 0.75, Displacement: 0.25,
		Segments: 5, Samples: 10, Law: "linear",
		Output: OutputConfig{DPI: DefaultDPI},
	},
	"wide-sweep": {
		StartAngle: 0, EndAngle: 270, Radius: 0.75, Displacement: 0.25,
		Segments: 18, Samples: 40, Law: "linear",
		Output: OutputConfig{DPI: DefaultDPI},
	},
	"quadratic": {
		StartAngle: 0, EndAngle: 120, Radius: 1.0, Displacement: 0.5,
		Segments: 12, Samples: 50, Law: "quadratic",
		Output: OutputConfig{DPI: DefaultDPI},
	},
	"ease-out": {
		StartAngle: 0, EndAngle: 120, Radius: 1.0, Displacement: 0.5,
		Segments: 12, Samples: 50, Law: "ease-out",
		Output: OutputConfig{DPI: DefaultDPI},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
