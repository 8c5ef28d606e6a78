package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv("VOXEL_CONFIG", "")

	cfg, err := Load("")
	assert.ErrorIs(t, err, ErrNoConfig)
	require.NotNil(t, cfg)
	assert.Equal(t, 2, cfg.World.RenderDistance)
	assert.Equal(t, int64(69), cfg.Generator.Seed)
	assert.Equal(t, 5, cfg.Generator.DirtLayers)
	assert.Equal(t, 100, cfg.Generator.CloudY)
	assert.Equal(t, float32(45), cfg.Camera.FOV)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "voxel.yaml", `
world:
  render_distance: 4
generator:
  kind: flat
  seed: 7
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.World.RenderDistance)
	assert.Equal(t, GeneratorFlat, cfg.Generator.Kind)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Незаданные поля сохраняют значения по умолчанию.
	assert.Equal(t, 10, cfg.World.InteractionDistance)
	assert.Equal(t, 5, cfg.Generator.DirtLayers)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "voxel.toml", `
[world]
render_distance = 3
async_generation = true

[generator]
sea_y = 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.World.RenderDistance)
	assert.True(t, cfg.World.AsyncGeneration)
	assert.Equal(t, 12, cfg.Generator.SeaY)
	assert.Equal(t, GeneratorDefault, cfg.Generator.Kind)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "env.yml", "world:\n  render_distance: 1\n")
	t.Setenv("VOXEL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.World.RenderDistance)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "generator:\n  kind: caves\n")
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative render distance", func(c *Config) { c.World.RenderDistance = -1 }},
		{"no workers", func(c *Config) { c.World.GenerationWorkers = 0 }},
		{"unknown generator", func(c *Config) { c.Generator.Kind = "islands" }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPortFallback(t *testing.T) {
	m := MetricsConfig{}
	t.Setenv("VOXEL_METRICS_PORT", "")
	assert.Equal(t, 2112, m.GetPort())

	t.Setenv("VOXEL_METRICS_PORT", "9100")
	assert.Equal(t, 9100, m.GetPort())

	m.Port = 9200
	assert.Equal(t, 9200, m.GetPort())

	d := DebugConfig{}
	t.Setenv("VOXEL_DEBUG_PORT", "not-a-port")
	assert.Equal(t, 8088, d.GetPort())
}
