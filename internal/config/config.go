package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Store    StoreConfig    `yaml:"store"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	AI       AIConfig       `yaml:"ai"`
	AWS      AWSConfig      `yaml:"aws"`
	Log      LogConfig      `yaml:"log"`
}

// MatchingConfig holds swipe and feed configuration
type MatchingConfig struct {
	UndoWindow           time.Duration `yaml:"undo_window"`
	SimulateReciprocity  bool          `yaml:"simulate_reciprocity"`
	LikeProbability      float64       `yaml:"like_probability"`
	SuperLikeProbability float64       `yaml:"superlike_probability"`
	MaxDistance          int           `yaml:"max_distance"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	// Driver is one of memory, redis, postgres
	Driver      string `yaml:"driver"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
	DatabaseURL string `yaml:"database_url"`
}

// MetricsConfig holds the ops HTTP listener configuration
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// AIConfig holds text assistant configuration
type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

// AWSConfig holds voice note storage configuration
type AWSConfig struct {
	Region    string `yaml:"region"`
	S3Bucket  string `yaml:"s3_bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			UndoWindow:           5 * time.Second,
			SimulateReciprocity:  true,
			LikeProbability:      0.30,
			SuperLikeProbability: 0.75,
			MaxDistance:          50,
		},
		Store: StoreConfig{
			Driver:      "memory",
			RedisPrefix: "cupid:",
		},
		Metrics: MetricsConfig{Addr: ":9090"},
		AI:      AIConfig{Model: "gemini-2.5-flash"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file is not an error. Environment variables win over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.GeminiAPIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Store.RedisURL = v
	}
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "redis":
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store driver redis requires redis_url")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store driver postgres requires database_url")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Matching.UndoWindow <= 0 {
		return fmt.Errorf("matching.undo_window must be positive")
	}
	for name, p := range map[string]float64{
		"like_probability":      c.Matching.LikeProbability,
		"superlike_probability": c.Matching.SuperLikeProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("matching.%s must be between 0 and 1", name)
		}
	}
	if c.Matching.MaxDistance < 0 {
		return fmt.Errorf("matching.max_distance must not be negative")
	}
	return nil
}
