package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается Validate для некорректных значений
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации приложения.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Storage   StorageConfig   `yaml:"storage"`
}

// GeneratorConfig параметры генератора уровней подземелья
type GeneratorConfig struct {
	Seed              int64   `yaml:"seed"`
	BaseWidth         int     `yaml:"base_width"`
	BaseHeight        int     `yaml:"base_height"`
	DeltaWidth        int     `yaml:"delta_width"`  // прирост ширины на уровень вниз
	DeltaHeight       int     `yaml:"delta_height"` // прирост высоты на уровень вниз
	MinRoomSize       int     `yaml:"min_room_size"`
	MaxRoomSize       int     `yaml:"max_room_size"`
	LoopFactor        float64 `yaml:"loop_factor"`
	MaxFailedAttempts int     `yaml:"max_failed_attempts"`
	MaxLevel          int     `yaml:"max_level"`
}

type ServerConfig struct {
	RESTPort int  `yaml:"rest_port"`
	Metrics  bool `yaml:"metrics"`
	Gzip     bool `yaml:"gzip"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// StorageConfig хранилище тумана войны. Пустой Dir - хранить только в памяти.
type StorageConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:              1234,
			BaseWidth:         30,
			BaseHeight:        20,
			DeltaWidth:        6,
			DeltaHeight:       4,
			MinRoomSize:       4,
			MaxRoomSize:       6,
			LoopFactor:        0.125,
			MaxFailedAttempts: 150,
			MaxLevel:          20,
		},
		Server: ServerConfig{
			Metrics: true,
			Gzip:    true,
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "dungeon-gen",
		},
		Storage: StorageConfig{
			Compress: true,
		},
	}
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "DUNGEON_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// LevelSize возвращает размер карты уровня: глубже - больше, пропорции сохраняются
func (g *GeneratorConfig) LevelSize(level int) (width, height int) {
	return g.BaseWidth + g.DeltaWidth*level, g.BaseHeight + g.DeltaHeight*level
}

// Validate проверяет значения генератора
func (c *Config) Validate() error {
	g := c.Generator
	switch {
	case g.BaseWidth <= 0 || g.BaseHeight <= 0:
		return fmt.Errorf("%w: base size %dx%d", ErrInvalidConfig, g.BaseWidth, g.BaseHeight)
	case g.DeltaWidth < 0 || g.DeltaHeight < 0:
		return fmt.Errorf("%w: negative size delta", ErrInvalidConfig)
	case g.MinRoomSize < 2 || g.MaxRoomSize < g.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d,%d]", ErrInvalidConfig, g.MinRoomSize, g.MaxRoomSize)
	case g.LoopFactor < 0 || g.LoopFactor > 1:
		return fmt.Errorf("%w: loop_factor %.3f outside [0,1]", ErrInvalidConfig, g.LoopFactor)
	case g.MaxFailedAttempts <= 0:
		return fmt.Errorf("%w: max_failed_attempts must be positive", ErrInvalidConfig)
	case g.MaxLevel < 0:
		return fmt.Errorf("%w: max_level must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV DUNGEON_CONFIG, иначе возвращает дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("DUNGEON_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан - использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
