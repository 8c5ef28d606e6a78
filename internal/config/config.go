package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig возвращается Load, когда путь не задан ни аргументом, ни через
// VOXEL_CONFIG. Вместе с ошибкой возвращается конфигурация по умолчанию.
var ErrNoConfig = errors.New("config: no config file given")

// Поддерживаемые генераторы ландшафта.
const (
	GeneratorDefault = "default"
	GeneratorFlat    = "flat"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Generator  GeneratorConfig  `yaml:"generator" toml:"generator"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics" toml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing" toml:"tracing"`
	Debug      DebugConfig      `yaml:"debug" toml:"debug"`
}

type WorldConfig struct {
	RenderDistance      int  `yaml:"render_distance" toml:"render_distance"`
	InteractionDistance int  `yaml:"interaction_distance" toml:"interaction_distance"`
	AsyncGeneration     bool `yaml:"async_generation" toml:"async_generation"`
	GenerationWorkers   int  `yaml:"generation_workers" toml:"generation_workers"`
}

// GeneratorConfig содержит параметры генерации мира
type GeneratorConfig struct {
	Kind       string `yaml:"kind" toml:"kind"`
	Seed       int64  `yaml:"seed" toml:"seed"`
	SeaY       int    `yaml:"sea_y" toml:"sea_y"`
	DirtLayers int    `yaml:"dirt_layers" toml:"dirt_layers"`
	CloudY     int    `yaml:"cloud_y" toml:"cloud_y"`

	// Только для плоского мира: верхний слой травы и частота дыр в нём.
	FlatSurfaceY  int `yaml:"flat_surface_y" toml:"flat_surface_y"`
	HoleFrequency int `yaml:"hole_frequency" toml:"hole_frequency"`
}

type CameraConfig struct {
	FOV    float32 `yaml:"fov" toml:"fov"`
	Near   float32 `yaml:"near" toml:"near"`
	Far    float32 `yaml:"far" toml:"far"`
	Aspect float32 `yaml:"aspect" toml:"aspect"`
}

// SimulationConfig управляет безголовым циклом кадров.
type SimulationConfig struct {
	FrameRate   int     `yaml:"frame_rate" toml:"frame_rate"`
	Frames      int     `yaml:"frames" toml:"frames"` // 0 — до сигнала завершения
	PlayerSpeed float32 `yaml:"player_speed" toml:"player_speed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" или "console"
	File   string `yaml:"file" toml:"file"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	Port    int  `yaml:"port" toml:"port"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled"`
	ServiceName string `yaml:"service_name" toml:"service_name"`
	Endpoint    string `yaml:"endpoint" toml:"endpoint"`
	Insecure    bool   `yaml:"insecure" toml:"insecure"`
}

type DebugConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Port    int    `yaml:"port" toml:"port"`
	Mode    string `yaml:"mode" toml:"mode"` // режим gin: debug, release, test
}

// GetPort возвращает порт Prometheus с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getPortWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// GetPort возвращает порт отладочного API с поддержкой fallback значений
func (d *DebugConfig) GetPort() int {
	return getPortWithEnvFallback(d.Port, "VOXEL_DEBUG_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает файл конфигурации. Формат выбирается по расширению:
// .toml разбирается как TOML, всё остальное как YAML.
// Если path == "", используется ENV VOXEL_CONFIG; если и он пуст,
// возвращаются значения по умолчанию вместе с ErrNoConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return Default(), ErrNoConfig
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			RenderDistance:      2,
			InteractionDistance: 10,
			GenerationWorkers:   2,
		},
		Generator: GeneratorConfig{
			Kind:         GeneratorDefault,
			Seed:         69,
			SeaY:         0,
			DirtLayers:   5,
			CloudY:       100,
			FlatSurfaceY: 0,
		},
		Camera: CameraConfig{
			FOV:    45,
			Near:   0.1,
			Far:    200,
			Aspect: 16.0 / 9.0,
		},
		Simulation: SimulationConfig{
			FrameRate:   60,
			PlayerSpeed: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			ServiceName: "voxelsim",
		},
		Debug: DebugConfig{
			Mode: "release",
		},
	}
}

// Validate проверяет значения, при которых мир не может работать.
func (c *Config) Validate() error {
	if c.World.RenderDistance < 0 {
		return fmt.Errorf("world.render_distance must be >= 0, got %d", c.World.RenderDistance)
	}
	if c.World.InteractionDistance <= 0 {
		return fmt.Errorf("world.interaction_distance must be > 0, got %d", c.World.InteractionDistance)
	}
	if c.World.GenerationWorkers < 1 {
		return fmt.Errorf("world.generation_workers must be >= 1, got %d", c.World.GenerationWorkers)
	}

	switch c.Generator.Kind {
	case GeneratorDefault, GeneratorFlat:
	default:
		return fmt.Errorf("generator.kind: unknown generator %q", c.Generator.Kind)
	}
	if c.Generator.DirtLayers < 0 {
		return fmt.Errorf("generator.dirt_layers must be >= 0, got %d", c.Generator.DirtLayers)
	}
	if c.Generator.HoleFrequency < 0 {
		return fmt.Errorf("generator.hole_frequency must be >= 0, got %d", c.Generator.HoleFrequency)
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}
