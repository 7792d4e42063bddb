package config

import "sort"

// Presets tweak the defaults. Each call to GetPreset starts from a fresh
// DefaultConfig so callers may modify the result.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Network.Nodes = 120
		c.Network.ConnectionProbability = 0.2
		c.Network.MaxConnectionDistance = 4
	},
	"sparse": func(c *Config) {
		c.Network.Nodes = 25
		c.Network.ConnectionProbability = 0.05
	},
	"calm": func(c *Config) {
		c.Network.MaxSpeed = 0.002
		c.Camera.Smoothing = 0.02
	},
	"storm": func(c *Config) {
		c.Network.Nodes = 80
		c.Network.MaxSpeed = 0.05
		c.Network.ConnectionProbability = 0.3
		c.Camera.Parallax = 2
		c.Camera.Smoothing = 0.15
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	cfg.Preset = name
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
