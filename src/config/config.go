package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FloorMin     = 1
	FloorMax     = 20
	FleetSize    = 5
	TickInterval = 1 * time.Second
	LogLevel     = "info"
	EnvPrefix    = "ELEVSIM_"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is fixed once the dispatcher is constructed.
type Config struct {
	FloorMin     int           `yaml:"floor_min"`
	FloorMax     int           `yaml:"floor_max"`
	FleetSize    int           `yaml:"fleet_size"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`
	RemoteAddr   string        `yaml:"remote_addr"`
}

func Default() Config {
	return Config{
		FloorMin:     FloorMin,
		FloorMax:     FloorMax,
		FleetSize:    FleetSize,
		TickInterval: TickInterval,
		LogLevel:     LogLevel,
	}
}

// Load builds a config from defaults, then the YAML file, then the .env file,
// then the process environment. Empty paths are skipped, and missing files
// are not an error.
func Load(yamlPath, envPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if err := cfg.loadYAML(yamlPath); err != nil {
			return cfg, err
		}
	}

	envFile := map[string]string{}
	if envPath != "" {
		values, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			envFile = values
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read env file %s: %w", envPath, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := envFile[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (cfg *Config) loadYAML(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"FLOOR_MIN":  &cfg.FloorMin,
		"FLOOR_MAX":  &cfg.FloorMax,
		"FLEET_SIZE": &cfg.FleetSize,
	}
	for key, field := range ints {
		raw, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, key, raw)
		}
		*field = v
	}

	if raw, ok := lookup(EnvPrefix + "TICK_INTERVAL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %sTICK_INTERVAL=%q: %v", ErrInvalidConfig, EnvPrefix, raw, err)
		}
		cfg.TickInterval = d
	}

	strs := map[string]*string{
		"LOG_LEVEL":   &cfg.LogLevel,
		"LOG_FILE":    &cfg.LogFile,
		"REMOTE_ADDR": &cfg.RemoteAddr,
	}
	for key, field := range strs {
		if raw, ok := lookup(EnvPrefix + key); ok {
			*field = strings.TrimSpace(raw)
		}
	}
	return nil
}

func (cfg Config) Validate() error {
	if cfg.FloorMin >= cfg.FloorMax {
		return fmt.Errorf("%w: floor_min %d must be below floor_max %d", ErrInvalidConfig, cfg.FloorMin, cfg.FloorMax)
	}
	if cfg.FleetSize < 1 {
		return fmt.Errorf("%w: fleet_size %d must be at least 1", ErrInvalidConfig, cfg.FleetSize)
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval %s must be positive", ErrInvalidConfig, cfg.TickInterval)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	return nil
}

// Floors is the number of floors served.
func (cfg Config) Floors() int {
	return cfg.FloorMax - cfg.FloorMin + 1
}
