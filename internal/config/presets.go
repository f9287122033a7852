package config

import "sort"

// Presets are applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"zero-g": func(c *Config) {
		c.Forces.Gravity.Enabled = false
		c.Population.Damping = 1
	},
	"windy": func(c *Config) {
		c.Forces.Wind.Enabled = true
		c.Forces.Wind.Strength = 15
	},
	"storm": func(c *Config) {
		c.Forces.Turbulence.Enabled = true
		c.Forces.Turbulence.Strength = 40
		c.Forces.Wind.Enabled = true
		c.Forces.Wind.Strength = 5
		c.Population.Count = 150
	},
	"billiards": func(c *Config) {
		c.Forces.Gravity.Enabled = false
		c.Forces.Attractor.Enabled = false
		c.Interaction.Enabled = false
		c.Population.Damping = 1
		c.Population.Restitution = 1
		c.Population.Count = 60
		c.Integrator = "euler"
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
