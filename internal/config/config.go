package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid возвращается, если значения конфигурации противоречат друг другу
var ErrInvalid = errors.New("invalid config")

// Переменные окружения
const (
	EnvConfigPath = "ZONEWORLD_CONFIG"
	EnvRESTPort   = "ZONEWORLD_REST_PORT"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	View    ViewConfig    `yaml:"view"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Stream  StreamConfig  `yaml:"stream"`
	Physics PhysicsConfig `yaml:"physics"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig содержит параметры генерации мира
type WorldConfig struct {
	Seed                 int64   `yaml:"seed"`
	ChunkSize            int     `yaml:"chunk_size"`
	MinY                 int     `yaml:"min_y"`
	MaxY                 int     `yaml:"max_y"`
	WaterLevel           int     `yaml:"water_level"`
	Mile                 float64 `yaml:"mile"`
	ContinentalAmplitude float64 `yaml:"continental_amplitude"`
}

// ViewConfig задаёт окно видимости чанков
type ViewConfig struct {
	Radius           int     `yaml:"radius"`
	HighDetailRadius int     `yaml:"high_detail_radius"`
	PeripheralDot    float64 `yaml:"peripheral_dot"`
	PositionEpsilon  float64 `yaml:"position_epsilon"`
	FacingEpsilon    float64 `yaml:"facing_epsilon"`
}

// MeshConfig содержит параметры построения геометрии чанка
type MeshConfig struct {
	SampleStep      int `yaml:"sample_step"`
	SubsurfaceDepth int `yaml:"subsurface_depth"`
	Headroom        int `yaml:"headroom"`
}

// StreamConfig настраивает параллельную подгрузку чанков
type StreamConfig struct {
	Workers       int `yaml:"workers"`
	BudgetPerSync int `yaml:"budget_per_sync"`
}

// PhysicsConfig описывает кинематику агента
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpForce        float64 `yaml:"jump_force"`
	MoveSpeed        float64 `yaml:"move_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	Friction         float64 `yaml:"friction"`
	PlayerHeight     float64 `yaml:"player_height"`
	PlayerRadius     float64 `yaml:"player_radius"`
	StepHeight       float64 `yaml:"step_height"`
	VoidY            float64 `yaml:"void_y"`
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	SpawnZ           float64 `yaml:"spawn_z"`
	FixedStep        float64 `yaml:"fixed_step"`
	SolidityCache    bool    `yaml:"solidity_cache"`
	CacheClearEvery  int     `yaml:"cache_clear_every"`
}

// ServerConfig настраивает инспекционный HTTP API и телеметрию
type ServerConfig struct {
	RESTPort     int    `yaml:"rest_port"`
	Telemetry    bool   `yaml:"telemetry"`
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// LoggingConfig задаёт каталог и уровни логов
type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`

	// Components переопределяет уровень для отдельных компонентов (world, chunk, physics, api)
	Components map[string]string `yaml:"components"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, EnvRESTPort, 8088)
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

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:                 12345,
			ChunkSize:            32,
			MinY:                 -32,
			MaxY:                 128,
			WaterLevel:           3,
			Mile:                 500,
			ContinentalAmplitude: 4,
		},
		View: ViewConfig{
			Radius:           4,
			HighDetailRadius: 2,
			PeripheralDot:    -0.3,
			PositionEpsilon:  0.5,
			FacingEpsilon:    0.05,
		},
		Mesh: MeshConfig{
			SampleStep:      4,
			SubsurfaceDepth: 2,
			Headroom:        64,
		},
		Stream: StreamConfig{
			Workers:       4,
			BudgetPerSync: 8,
		},
		Physics: PhysicsConfig{
			Gravity:          30,
			JumpForce:        10,
			MoveSpeed:        8,
			SprintMultiplier: 1.6,
			Friction:         10,
			PlayerHeight:     1.8,
			PlayerRadius:     0.4,
			StepHeight:       1.0,
			VoidY:            -20,
			SpawnX:           0,
			SpawnY:           30,
			SpawnZ:           0,
			FixedStep:        1.0 / 60.0,
			SolidityCache:    true,
			CacheClearEvery:  60,
		},
		Server: ServerConfig{
			Telemetry:   false,
			ServiceName: "zoneworld",
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch {
	case c.World.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalid, c.World.ChunkSize)
	case c.World.MinY >= c.World.MaxY:
		return fmt.Errorf("%w: min_y %d must be below max_y %d", ErrInvalid, c.World.MinY, c.World.MaxY)
	case c.World.Mile <= 0:
		return fmt.Errorf("%w: mile must be positive", ErrInvalid)
	case c.View.Radius < 0 || c.View.HighDetailRadius < 0:
		return fmt.Errorf("%w: view radii must not be negative", ErrInvalid)
	case c.Mesh.SampleStep <= 0:
		return fmt.Errorf("%w: mesh sample_step must be positive", ErrInvalid)
	case c.Stream.Workers <= 0 || c.Stream.BudgetPerSync <= 0:
		return fmt.Errorf("%w: stream workers and budget must be positive", ErrInvalid)
	case c.Physics.PlayerHeight <= 0 || c.Physics.PlayerRadius <= 0:
		return fmt.Errorf("%w: player dimensions must be positive", ErrInvalid)
	case c.Physics.FixedStep <= 0:
		return fmt.Errorf("%w: fixed_step must be positive", ErrInvalid)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV ZONEWORLD_CONFIG; если и он пуст,
// возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
