package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/geom"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultTheme      = "konnekt"
	DefaultNodeColor  = "#00df81"
	DefaultLineColor  = "#00df81"
	DefaultLineAlpha  = 0.3
	DefaultBackground = "#0a0a0a"
	DefaultAmbient    = "#aaaaaa"
	DefaultPointLight = "#00ff81"
)

type Config struct {
	Seed    int64         `yaml:"seed" toml:"seed"`
	Preset  string        `yaml:"preset,omitempty" toml:"preset"`
	Network NetworkConfig `yaml:"network" toml:"network"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Style   StyleConfig   `yaml:"style" toml:"style"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
}

type NetworkConfig struct {
	Nodes                 int        `yaml:"nodes" toml:"nodes"`
	NodeRadius            float64    `yaml:"node_radius" toml:"node_radius"`
	ConnectionProbability float64    `yaml:"connection_probability" toml:"connection_probability"`
	MaxConnectionDistance float64    `yaml:"max_connection_distance" toml:"max_connection_distance"`
	MaxSpeed              float64    `yaml:"max_speed" toml:"max_speed"`
	Bounds                BoundsSpec `yaml:"bounds" toml:"bounds"`
}

// BoundsSpec holds the half-extents of the box on each axis.
type BoundsSpec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

type CameraConfig struct {
	FOV       float64 `yaml:"fov" toml:"fov"`
	Near      float64 `yaml:"near" toml:"near"`
	Far       float64 `yaml:"far" toml:"far"`
	Depth     float64 `yaml:"depth" toml:"depth"`
	Smoothing float64 `yaml:"smoothing" toml:"smoothing"`
	Parallax  float64 `yaml:"parallax" toml:"parallax"`
}

type StyleConfig struct {
	Theme      string    `yaml:"theme" toml:"theme"`
	NodeColor  string    `yaml:"node_color" toml:"node_color"`
	LineColor  string    `yaml:"line_color" toml:"line_color"`
	LineAlpha  float64   `yaml:"line_alpha" toml:"line_alpha"`
	Background string    `yaml:"background" toml:"background"`
	Ambient    string    `yaml:"ambient" toml:"ambient"`
	PointLight LightSpec `yaml:"point_light" toml:"point_light"`
}

// LightSpec describes the scene's point light. Nodes and lines use an
// unlit material, so no renderer shades with it.
type LightSpec struct {
	Color     string     `yaml:"color" toml:"color"`
	Intensity float64    `yaml:"intensity" toml:"intensity"`
	Distance  float64    `yaml:"distance" toml:"distance"`
	Position  BoundsSpec `yaml:"position" toml:"position"`
}

type RenderConfig struct {
	FPS    int `yaml:"fps" toml:"fps"`
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

func DefaultConfig() *Config {
	np := network.DefaultParams()
	cp := camera.DefaultParams()
	return &Config{
		Network: NetworkConfig{
			Nodes:                 np.NodeCount,
			NodeRadius:            np.NodeRadius,
			ConnectionProbability: np.ConnectionProbability,
			MaxConnectionDistance: np.MaxConnectionDistance,
			MaxSpeed:              np.MaxSpeed,
			Bounds:                BoundsSpec{X: np.Bounds.X, Y: np.Bounds.Y, Z: np.Bounds.Z},
		},
		Camera: CameraConfig{
			FOV:       cp.FOV,
			Near:      cp.Near,
			Far:       cp.Far,
			Depth:     cp.Depth,
			Smoothing: cp.Smoothing,
			Parallax:  cp.Parallax,
		},
		Style: StyleConfig{
			Theme:      DefaultTheme,
			NodeColor:  DefaultNodeColor,
			LineColor:  DefaultLineColor,
			LineAlpha:  DefaultLineAlpha,
			Background: DefaultBackground,
			Ambient:    DefaultAmbient,
			PointLight: LightSpec{
				Color:     DefaultPointLight,
				Intensity: 1,
				Distance:  100,
				Position:  BoundsSpec{Z: 50},
			},
		},
		Render: RenderConfig{
			FPS:    DefaultFPS,
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads a YAML file, or TOML when the extension is .toml, on top of
// the defaults. A preset named in the file replaces the defaults as the
// base; values in the file still win.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Preset == "" {
		return cfg, nil
	}
	base := GetPreset(cfg.Preset)
	if base == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", cfg.Preset, ListPresets())
	}
	if err := DecodeFile(path, base); err != nil {
		return nil, err
	}
	return base, nil
}

// DecodeFile overlays the file at path onto cfg.
func DecodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) NetworkParams() network.Params {
	return network.Params{
		NodeCount:             c.Network.Nodes,
		Bounds:                geom.Vec3{X: c.Network.Bounds.X, Y: c.Network.Bounds.Y, Z: c.Network.Bounds.Z},
		MaxSpeed:              c.Network.MaxSpeed,
		ConnectionProbability: c.Network.ConnectionProbability,
		MaxConnectionDistance: c.Network.MaxConnectionDistance,
		NodeRadius:            c.Network.NodeRadius,
	}
}

func (c *Config) CameraParams() camera.Params {
	return camera.Params{
		FOV:       c.Camera.FOV,
		Near:      c.Camera.Near,
		Far:       c.Camera.Far,
		Depth:     c.Camera.Depth,
		Smoothing: c.Camera.Smoothing,
		Parallax:  c.Camera.Parallax,
	}
}

func (c *Config) Visualizer() visualizer.Config {
	return visualizer.Config{
		Network: c.NetworkParams(),
		Camera:  c.CameraParams(),
		Seed:    c.Seed,
	}
}

func (c *Config) Validate() error {
	if err := c.NetworkParams().Validate(); err != nil {
		return err
	}
	if err := c.CameraParams().Validate(); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render fps must be positive, got %d", c.Render.FPS)
	}
	if c.Style.LineAlpha < 0 || c.Style.LineAlpha > 1 {
		return fmt.Errorf("line alpha must be within [0,1], got %g", c.Style.LineAlpha)
	}
	return nil
}
