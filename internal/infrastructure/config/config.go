package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LogConfig         `yaml:"logging"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	CORS        CORSConfig        `yaml:"cors"`
	Workspace   WorkspaceConfig   `yaml:"workspace"`
	Exec        ExecConfig        `yaml:"exec"`
	Compression CompressionConfig `yaml:"compression"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8417" yaml:"port"`
	Host string `envconfig:"HOST" default:"127.0.0.1" yaml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
	// GlobalRPS caps all clients together. Zero disables the global limiter.
	GlobalRPS   int `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0" yaml:"global_rps"`
	GlobalBurst int `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0" yaml:"global_burst"`
}

// CORSConfig holds allowed origins for the GUI front-end.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*" yaml:"origins"`
}

// WorkspaceConfig holds tree enumeration settings.
type WorkspaceConfig struct {
	Exclude []string `envconfig:"WORKSPACE_EXCLUDE" yaml:"exclude"`
}

// ExecConfig gates the shell command executor.
type ExecConfig struct {
	Enabled bool          `envconfig:"EXEC_ENABLED" default:"false" yaml:"enabled"`
	Allow   []string      `envconfig:"EXEC_ALLOW" yaml:"allow"`
	Timeout time.Duration `envconfig:"EXEC_TIMEOUT" default:"60s" yaml:"timeout"`
	Shell   string        `envconfig:"EXEC_SHELL" default:"sh" yaml:"shell"`

	BreakerThreshold int           `envconfig:"EXEC_BREAKER_THRESHOLD" default:"5" yaml:"breaker_threshold"`
	BreakerCooldown  time.Duration `envconfig:"EXEC_BREAKER_COOLDOWN" default:"30s" yaml:"breaker_cooldown"`
}

// CompressionConfig controls gzip encoding of responses.
type CompressionConfig struct {
	Enabled  bool `envconfig:"COMPRESSION_ENABLED" default:"true" yaml:"enabled"`
	MinBytes int  `envconfig:"COMPRESSION_MIN_BYTES" default:"1024" yaml:"min_bytes"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads configuration from the environment and then overlays the
// YAML file at path. Keys present in the file win over the environment.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8417",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Exec: ExecConfig{
			Enabled: false,
			Timeout: 60 * time.Second,
			Shell:   "sh",

			BreakerThreshold: 5,
			BreakerCooldown:  30 * time.Second,
		},
		Compression: CompressionConfig{
			Enabled:  true,
			MinBytes: 1024,
		},
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
