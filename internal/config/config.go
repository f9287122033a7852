package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultFPS           = 60
	DefaultParticles     = 100
	DefaultMassMin       = 1.0
	DefaultMassMax       = 5.0
	DefaultRadiusPerMass = 2.0
	DefaultDamping       = 0.98
	DefaultRestitution   = 0.8
	DefaultGravity       = 9.8
	DefaultAttractor     = 5000.0
	DefaultMinDistanceSq = 1.0
	DefaultCoefficient   = 0.05
	DefaultEquilibrium   = 50.0
	DefaultMaxDt         = 1.0 / 30
	DefaultIntegrator    = "rk4"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Viewport    ViewportConfig    `yaml:"viewport"`
	Population  PopulationConfig  `yaml:"population"`
	Forces      ForcesConfig      `yaml:"forces"`
	Interaction InteractionConfig `yaml:"interaction"`
	Integrator  string            `yaml:"integrator"`
	MaxDt       float32           `yaml:"max_dt"`
	Seed        int64             `yaml:"seed"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type PopulationConfig struct {
	Count         int     `yaml:"count"`
	MassMin       float32 `yaml:"mass_min"`
	MassMax       float32 `yaml:"mass_max"`
	RadiusPerMass float32 `yaml:"radius_per_mass"`
	Damping       float32 `yaml:"damping"`
	Restitution   float32 `yaml:"restitution"`
}

type ForcesConfig struct {
	Gravity    DirectionalConfig `yaml:"gravity"`
	Wind       DirectionalConfig `yaml:"wind"`
	Attractor  AttractorConfig   `yaml:"attractor"`
	Turbulence TurbulenceConfig  `yaml:"turbulence"`
}

type DirectionalConfig struct {
	Enabled   bool       `yaml:"enabled"`
	Strength  float32    `yaml:"strength"`
	Direction [2]float32 `yaml:"direction,flow"`
}

type AttractorConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Strength      float32 `yaml:"strength"`
	MinDistanceSq float32 `yaml:"min_distance_sq"`
}

type TurbulenceConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Strength float32 `yaml:"strength"`
	Scale    float64 `yaml:"scale"`
}

type InteractionConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Coefficient float32 `yaml:"coefficient"`
	Equilibrium float32 `yaml:"equilibrium"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Population: PopulationConfig{
			Count:         DefaultParticles,
			MassMin:       DefaultMassMin,
			MassMax:       DefaultMassMax,
			RadiusPerMass: DefaultRadiusPerMass,
			Damping:       DefaultDamping,
			Restitution:   DefaultRestitution,
		},
		Forces: ForcesConfig{
			Gravity: DirectionalConfig{Enabled: true, Strength: DefaultGravity, Direction: [2]float32{0, 1}},
			Wind:    DirectionalConfig{Strength: 2, Direction: [2]float32{1, 0}},
			Attractor: AttractorConfig{
				Enabled:       true,
				Strength:      DefaultAttractor,
				MinDistanceSq: DefaultMinDistanceSq,
			},
			Turbulence: TurbulenceConfig{Strength: 20, Scale: 0.005},
		},
		Interaction: InteractionConfig{
			Enabled:     true,
			Coefficient: DefaultCoefficient,
			Equilibrium: DefaultEquilibrium,
		},
		Integrator: DefaultIntegrator,
		MaxDt:      DefaultMaxDt,
	}
}

// Load reads a YAML file on top of base, so a file only needs the keys it
// changes. A nil base means DefaultConfig. base itself is not modified.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if err := cfg.Overlay(data); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Overlay applies a YAML document on top of an existing config.
func (c *Config) Overlay(data []byte) error {
	return yaml.Unmarshal(data, c)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// MaxRadius is the radius of the heaviest particle the population can spawn.
func (c *Config) MaxRadius() float32 {
	return c.Population.MassMax * c.Population.RadiusPerMass
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	v, p := c.Viewport, c.Population
	check(v.Width > 0 && v.Height > 0, "viewport must be positive, got %dx%d", v.Width, v.Height)
	check(v.FPS > 0, "fps must be positive, got %d", v.FPS)
	check(p.Count >= 0, "particle count must not be negative, got %d", p.Count)
	check(p.MassMin > 0, "mass_min must be positive, got %g", p.MassMin)
	check(p.MassMax >= p.MassMin, "mass_max (%g) below mass_min (%g)", p.MassMax, p.MassMin)
	check(p.RadiusPerMass > 0, "radius_per_mass must be positive, got %g", p.RadiusPerMass)
	check(p.Damping > 0 && p.Damping <= 1, "damping must be in (0,1], got %g", p.Damping)
	check(p.Restitution >= 0 && p.Restitution <= 1, "restitution must be in [0,1], got %g", p.Restitution)
	check(2*c.MaxRadius() <= float32(min(v.Width, v.Height)), "largest particle (radius %g) does not fit the viewport", c.MaxRadius())
	check(c.Forces.Attractor.MinDistanceSq > 0, "attractor min_distance_sq must be positive, got %g", c.Forces.Attractor.MinDistanceSq)
	check(c.MaxDt > 0, "max_dt must be positive, got %g", c.MaxDt)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
