package config

import (
	"fmt"
	"os"

	"github.com/Fer14/gravitybox/internal/engine"
	"gopkg.in/yaml.v3"
)

const DefaultFrameRate = 60

// Config is the process-wide simulation configuration, loaded once at
// startup and immutable afterwards.
type Config struct {
	Width     float64      `yaml:"width"`
	Height    float64      `yaml:"height"`
	G         float64      `yaml:"g"`
	Rebound   float64      `yaml:"rebound"`
	Softening float64      `yaml:"softening"`
	MaxBodies int          `yaml:"max_bodies"`
	Mass      float64      `yaml:"mass"`
	FrameRate int          `yaml:"frame_rate"`
	Bodies    []BodyConfig `yaml:"bodies"`
}

// BodyConfig seeds one body. A zero mass means "use the configured
// default mass".
type BodyConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
	Mass float64 `yaml:"mass"`
}

func Default() *Config {
	return &Config{
		Width:     engine.DefaultWidth,
		Height:    engine.DefaultHeight,
		G:         engine.DefaultG,
		Rebound:   engine.DefaultRebound,
		Softening: engine.DefaultSoftening,
		MaxBodies: engine.DefaultMaxBodies,
		Mass:      engine.DefaultMass,
		FrameRate: DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
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

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: viewport must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.G <= 0 {
		return fmt.Errorf("config: g must be positive, got %g", c.G)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	return nil
}

// Dt is the fixed per-frame timestep.
func (c *Config) Dt() float64 {
	return 1.0 / float64(c.FrameRate)
}

// Engine translates the file configuration into engine parameters.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		G:         c.G,
		Width:     c.Width,
		Height:    c.Height,
		Rebound:   c.Rebound,
		Softening: c.Softening,
		MaxBodies: c.MaxBodies,
		Mass:      c.Mass,
	}
}

// SeedBodies builds the initial body set from the configuration.
func (c *Config) SeedBodies() ([]engine.Body, error) {
	bodies := make([]engine.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		mass := bc.Mass
		if mass == 0 {
			mass = c.Mass
		}
		b, err := engine.NewBody(engine.Vec2{X: bc.X, Y: bc.Y}, engine.Vec2{X: bc.VX, Y: bc.VY}, mass)
		if err != nil {
			return nil, fmt.Errorf("config: body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// NewEngine builds a seeded engine from the configuration.
func (c *Config) NewEngine() (*engine.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bodies, err := c.SeedBodies()
	if err != nil {
		return nil, err
	}
	e := engine.New(c.Engine())
	e.Seed(bodies)
	return e, nil
}
