package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50, cfg.Network.Nodes)
	assert.Equal(t, 0.1, cfg.Network.ConnectionProbability)
	assert.Equal(t, 5.0, cfg.Network.MaxConnectionDistance)
	assert.Equal(t, BoundsSpec{X: 10, Y: 7.5, Z: 5}, cfg.Network.Bounds)
	assert.Equal(t, 75.0, cfg.Camera.FOV)
	assert.Equal(t, 10.0, cfg.Camera.Depth)
	assert.Equal(t, DefaultNodeColor, cfg.Style.NodeColor)
	require.NoError(t, cfg.Validate())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	require.NotNil(t, cfg)
	assert.Equal(t, 120, cfg.Network.Nodes)
	assert.Equal(t, "dense", cfg.Preset)

	cfg.Network.Nodes = 1
	assert.Equal(t, 120, GetPreset("dense").Network.Nodes, "presets must not share state")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	require.NotEmpty(t, presets)
	assert.IsIncreasing(t, presets)
	for _, name := range presets {
		require.NoError(t, GetPreset(name).Validate(), name)
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodemesh.yaml")
	data := "seed: 7\nnetwork:\n  nodes: 12\ncamera:\n  smoothing: 0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 12, cfg.Network.Nodes)
	assert.Equal(t, 0.1, cfg.Camera.Smoothing)
	assert.Equal(t, 75.0, cfg.Camera.FOV, "unset fields keep defaults")
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodemesh.toml")
	data := "seed = 3\n\n[network]\nnodes = 8\nmax_speed = 0.01\n\n[render]\nfps = 30\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 8, cfg.Network.Nodes)
	assert.Equal(t, 0.01, cfg.Network.MaxSpeed)
	assert.Equal(t, 30, cfg.Render.FPS)
}

func TestLoadWithPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodemesh.yaml")
	data := "preset: storm\nnetwork:\n  nodes: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Network.Nodes, "file wins over preset")
	assert.Equal(t, 0.05, cfg.Network.MaxSpeed, "preset fills the rest")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("preset: nope\n"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("calm")
	cfg.Seed = 11
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.FPS = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Network.ConnectionProbability = -0.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Camera.Near = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Camera.Depth = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Render.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Render.Height = -1
	assert.Error(t, cfg.Validate())
}

func TestVisualizerConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	v := cfg.Visualizer()
	assert.Equal(t, int64(99), v.Seed)
	assert.Equal(t, 50, v.Network.NodeCount)
	assert.Equal(t, 7.5, v.Network.Bounds.Y)
	assert.Equal(t, 0.5, v.Camera.Parallax)
}

func TestDecodeFileOntoPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweak.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nparallax = 3.0\n"), 0644))

	cfg := GetPreset("dense")
	require.NoError(t, DecodeFile(path, cfg))
	assert.Equal(t, 3.0, cfg.Camera.Parallax)
	assert.Equal(t, 120, cfg.Network.Nodes)

	assert.Error(t, DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"), cfg))
}
