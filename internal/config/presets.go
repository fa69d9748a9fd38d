package config

import (
	"math"
	"sort"
)

// trisolY is the height of the equilateral triangle the classic
// three-body preset starts from (side 200).
var trisolY = 400 - math.Sqrt(200*200-100*100)

var Presets = map[string]*Config{
	// The classic setup: three equal masses on an equilateral triangle
	// with small tangential drifts.
	"trisol": presetWith([]BodyConfig{
		{X: 300, Y: 400, VX: 0.1, VY: 0.1},
		{X: 400, Y: trisolY, VX: -0.1, VY: 0.1},
		{X: 500, Y: 400, VX: 0.1, VY: -0.1},
	}),

	// Two bodies circling their midpoint.
	"binary": presetWith([]BodyConfig{
		{X: 350, Y: 300, VX: 0, VY: 0.35},
		{X: 450, Y: 300, VX: 0, VY: -0.35},
	}),

	// Four bodies falling toward the center from the compass points.
	"cross": presetWith([]BodyConfig{
		{X: 400, Y: 150},
		{X: 400, Y: 450},
		{X: 250, Y: 300},
		{X: 550, Y: 300},
	}),

	// Empty viewport; bodies come from pointer clicks.
	"empty": presetWith(nil),
}

func presetWith(bodies []BodyConfig) *Config {
	cfg := Default()
	cfg.Bodies = bodies
	return cfg
}

// GetPreset returns a copy of the named preset, so callers can adjust it
// without mutating the shared registry. Unknown names return nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
