package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Event-analytics backends selectable by the relay
const (
	EventBackendAmplitude = "amplitude"
	EventBackendSegment   = "segment"
)

// Config is the relay configuration. Values from a YAML file are overridden by
// environment variables.
type Config struct {
	Env       string          `yaml:"env" env:"BEACON_ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type HTTPConfig struct {
	ListenAddr      string        `yaml:"listen_addr" env:"BEACON_LISTEN_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"BEACON_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"BEACON_LOG_LEVEL" env-default:"info"`
}

type AnalyticsConfig struct {
	EventToken        string        `yaml:"event_token" env:"BEACON_EVENT_ANALYTICS_TOKEN"`
	TrafficToken      string        `yaml:"traffic_token" env:"BEACON_TRAFFIC_ANALYTICS_TOKEN"`
	EventBackend      string        `yaml:"event_backend" env:"BEACON_EVENT_BACKEND" env-default:"amplitude"`
	AmplitudeEndpoint string        `yaml:"amplitude_endpoint" env:"BEACON_AMPLITUDE_ENDPOINT"`
	SegmentEndpoint   string        `yaml:"segment_endpoint" env:"BEACON_SEGMENT_ENDPOINT"`
	GAEndpoint        string        `yaml:"ga_endpoint" env:"BEACON_GA_ENDPOINT"`
	HTTPTimeout       time.Duration `yaml:"http_timeout" env:"BEACON_HTTP_TIMEOUT" env-default:"10s"`
}

// Load reads an optional .env file, then path (if not empty), then the environment.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Analytics.EventBackend {
	case EventBackendAmplitude, EventBackendSegment:
	default:
		return fmt.Errorf("unknown event backend %q", c.Analytics.EventBackend)
	}
	if c.Analytics.EventToken == "" && c.Analytics.TrafficToken == "" {
		return errors.New("at least one of BEACON_EVENT_ANALYTICS_TOKEN and BEACON_TRAFFIC_ANALYTICS_TOKEN is required")
	}
	return nil
}
