package config

import (
	"fmt"
	"os"
	"railway/meta"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	ModeServer = "server"
	ModeClient = "client"
	ModeLocal  = "local"

	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

type Config struct {
	Mode      string   `yaml:"mode"`
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port"`
	Transport string   `yaml:"transport"`
	Names     []string `yaml:"names"`
	// Seed fixes every random choice of the host; 0 seeds from the clock.
	Seed       uint64 `yaml:"seed"`
	Games      int    `yaml:"games"`
	MetricsDir string `yaml:"metrics_dir"`
	LogLevel   string `yaml:"log_level"`
	// Board is an optional path to a board file replacing the built-in one.
	Board string `yaml:"board"`
}

var (
	cfg      *Config
	loadOnce sync.Once
	loadErr  error
)

func Default() Config {
	return Config{
		Mode:       ModeLocal,
		Host:       "localhost",
		Port:       meta.DEFAULT_PORT,
		Transport:  TransportTCP,
		Names:      []string{"Ada", "Charles"},
		Games:      10,
		MetricsDir: "metrics",
		LogLevel:   "info",
	}
}

// LoadConfig reads the configuration file once. Missing keys keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	loadOnce.Do(func() {
		c, err := Parse(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return cfg, loadErr
}

// Parse reads and validates a configuration file.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeServer, ModeClient, ModeLocal:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Transport {
	case TransportTCP, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if len(c.Names) != 2 {
		return fmt.Errorf("expected 2 player names, got %d", len(c.Names))
	}
	if c.Games < 1 {
		return fmt.Errorf("expected at least one game, got %d", c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
