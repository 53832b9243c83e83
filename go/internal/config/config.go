package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoCooldowns   = errors.New("no cooldowns configured")
	ErrEmptyName     = errors.New("cooldown name is required")
	ErrDuplicateName = errors.New("duplicate cooldown name")
	ErrMixedModes    = errors.New("cooldown sets both duration and min/max range")
)

// Config is the daemon configuration loaded from YAML.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Gateway      GatewayConfig `yaml:"gateway"`
	Events       EventsConfig  `yaml:"events"`
	Cooldowns    []Preset      `yaml:"cooldowns"`
}

type GatewayConfig struct {
	Port string `yaml:"port"`
}

// EventsConfig controls publication of cooldown transitions to JetStream.
type EventsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Stream        string `yaml:"stream"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// Preset describes one named cooldown. Either Duration or the
// MinDuration/MaxDuration pair is set, never both.
type Preset struct {
	Name        string        `yaml:"name"`
	Duration    time.Duration `yaml:"duration"`
	MinDuration time.Duration `yaml:"min_duration"`
	MaxDuration time.Duration `yaml:"max_duration"`
	AutoStart   bool          `yaml:"auto_start"`
}

// Ranged reports whether the preset samples its duration from a range.
func (p Preset) Ranged() bool {
	return p.MinDuration != 0 || p.MaxDuration != 0
}

// Build constructs the cooldown the preset describes.
func (p Preset) Build(opts ...cooldown.Option) (*cooldown.Cooldown, error) {
	if p.AutoStart {
		opts = append(opts, cooldown.WithAutoStart())
	}
	if p.Ranged() {
		cd, err := cooldown.NewRange(p.MinDuration, p.MaxDuration, opts...)
		if err != nil {
			return nil, fmt.Errorf("cooldown %q: %w", p.Name, err)
		}
		return cd, nil
	}
	return cooldown.New(p.Duration, opts...), nil
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Gateway:      GatewayConfig{Port: "8081"},
		Events: EventsConfig{
			Enabled:       false,
			URL:           nats.DefaultURL,
			Stream:        "COOLDOWN_EVENTS",
			SubjectPrefix: "cooldown.events",
		},
	}
}

// Load reads a YAML file, applies environment overrides and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("config file is empty")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with LOG_LEVEL, GATEWAY_PORT, TICK_INTERVAL
// and NATS_URL when they are set.
func ApplyEnv(cfg *Config) error {
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Gateway.Port = getEnv("GATEWAY_PORT", cfg.Gateway.Port)
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TICK_INTERVAL %q: %w", v, err)
		}
		cfg.TickInterval = d
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Events.URL = v
		cfg.Events.Enabled = true
	}
	return nil
}

func Validate(cfg *Config) error {
	if len(cfg.Cooldowns) == 0 {
		return ErrNoCooldowns
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", cfg.TickInterval)
	}
	seen := make(map[string]bool, len(cfg.Cooldowns))
	for i, p := range cfg.Cooldowns {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("cooldowns[%d]: %w", i, ErrEmptyName)
		}
		if seen[p.Name] {
			return fmt.Errorf("cooldown %q: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = true
		if p.Ranged() && p.Duration != 0 {
			return fmt.Errorf("cooldown %q: %w", p.Name, ErrMixedModes)
		}
		if p.Ranged() && p.MinDuration > p.MaxDuration {
			return fmt.Errorf("cooldown %q: %w", p.Name, &cooldown.ConfigError{Min: p.MinDuration, Max: p.MaxDuration})
		}
	}
	return nil
}

// Level maps LogLevel onto a zerolog level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Gateway.Port == "" {
		cfg.Gateway.Port = def.Gateway.Port
	}
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = def.Events.Stream
	}
	if cfg.Events.SubjectPrefix == "" {
		cfg.Events.SubjectPrefix = def.Events.SubjectPrefix
	}
	if cfg.Events.URL == "" {
		cfg.Events.URL = def.Events.URL
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
