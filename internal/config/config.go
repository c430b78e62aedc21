package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/voxel-client/internal/logging"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается (обёрнутой) из Validate при недопустимых значениях
var ErrInvalidConfig = errors.New("недопустимая конфигурация")

// Config корневая структура конфигурации клиента мира

type Config struct {
	World     WorldConfig     `yaml:"world"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type WorldConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Depth      int    `yaml:"depth"`
	Seed       uint32 `yaml:"seed"`
	RandomSeed bool   `yaml:"random_seed"`
	SuperFlat  bool   `yaml:"superflat"`
	FlatBlock  string `yaml:"flat_block"`
	Noise      string `yaml:"noise"`
}

type RenderConfig struct {
	Distance        int     `yaml:"distance"`
	CacheCapacity   int     `yaml:"cache_capacity"`
	CacheTTLSeconds float64 `yaml:"cache_ttl_seconds"`
	DistanceMargin  float64 `yaml:"distance_margin"`
	FOVDegrees      float64 `yaml:"fov_degrees"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	FileOutput bool   `yaml:"file"`
	// Components переопределяет консольный уровень отдельных компонентов: {render: debug}
	Components map[string]string `yaml:"components"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"` // host:port OTLP/HTTP, пусто = localhost:4318
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:      128,
			Height:     64,
			Depth:      128,
			Seed:       1,
			RandomSeed: false,
			FlatBlock:  "grass",
			Noise:      "value",
		},
		Render: RenderConfig{
			Distance:        96,
			CacheCapacity:   256,
			CacheTTLSeconds: 3.0,
			DistanceMargin:  1.2,
			FOVDegrees:      45,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "logs",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "voxel-client",
		},
	}
}

// GetMetricsPort возвращает порт Prometheus с поддержкой fallback значений.
// 0 означает, что HTTP-эндпоинт метрик не запускается.
func (m *MetricsConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 0)
}

// GetSeed возвращает сид мира: значение из конфига, затем VOXEL_SEED
func (w *WorldConfig) GetSeed() uint32 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseUint(envVal, 10, 32); err == nil {
			return uint32(seed)
		}
	}
	return 0
}

// GetRenderDistance возвращает дальность прорисовки с поддержкой fallback значений
func (r *RenderConfig) GetRenderDistance() int {
	return getIntWithEnvFallback(r.Distance, "VOXEL_RENDER_DISTANCE", 96)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configValue > 0 {
		return configValue
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	// Используем дефолтное значение
	return defaultValue
}

// Validate проверяет значения и возвращает все найденные ошибки разом
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.World.Width > 0, "world.width должен быть > 0, получено %d", c.World.Width)
	check(c.World.Height > 0, "world.height должен быть > 0, получено %d", c.World.Height)
	check(c.World.Depth > 0, "world.depth должен быть > 0, получено %d", c.World.Depth)
	check(c.World.Noise == "" || c.World.Noise == "value" || c.World.Noise == "perlin",
		"world.noise должен быть value или perlin, получено %q", c.World.Noise)
	for component, level := range c.Logging.Components {
		_, err := logging.ParseLevel(level)
		check(err == nil, "logging.components.%s: %v", component, err)
	}
	check(!(c.World.SuperFlat && c.World.RandomSeed),
		"world.random_seed не имеет смысла при world.superflat: плоский мир не зависит от сида")
	check(c.Render.CacheCapacity >= 0, "render.cache_capacity не может быть отрицательным")
	check(c.Render.CacheTTLSeconds >= 0, "render.cache_ttl_seconds не может быть отрицательным")
	check(c.Render.DistanceMargin >= 0, "render.distance_margin не может быть отрицательным")
	check(c.Render.FOVDegrees >= 0 && c.Render.FOVDegrees < 180, "render.fov_degrees должен быть в [0, 180)")

	return errors.Join(errs...)
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан - использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
