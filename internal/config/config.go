package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings
type Config struct {
	Port           string        `yaml:"port"`
	BackendURL     string        `yaml:"backend_url"`
	DatabaseURL    string        `yaml:"database_url"`
	SubjectTable   string        `yaml:"subject_table"`
	LogLevel       string        `yaml:"log_level"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Port:         "8001",
		BackendURL:   "http://localhost:8000",
		SubjectTable: "subjects",
		LogLevel:     "info",
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
		HTTPTimeout: 30 * time.Second,
	}
}

// Load reads the defaults, then the YAML file named by EXPLORER_CONFIG (if
// any), then environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("EXPLORER_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the settings present in a YAML file
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays the settings present in the environment
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("SUBJECT_TABLE"); v != "" {
		c.SubjectTable = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	return nil
}
