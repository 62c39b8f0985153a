package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTP      HTTP      `yaml:"http"`
	Session   Session   `yaml:"session"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Session struct {
	// Store is either "memory" or "redis".
	Store string        `yaml:"store" env:"SESSION_STORE" env-default:"memory"`
	TTL   time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"2h"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_CONNSTRING" env-default:"localhost:6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint     string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	ServiceName  string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"growing-tic-tac-toe"`
	StdoutTraces bool   `yaml:"stdout-traces" env:"OTEL_STDOUT_TRACES" env-default:"false"`
}

// Load reads the YAML file at path and applies environment overrides. A
// missing file is not an error; the environment and defaults are used alone.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (that *Config) validate() error {
	switch that.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", that.Session.Store)
	}
	if that.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", that.Session.TTL)
	}
	return nil
}
