package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	CORS     CORSConfig     `koanf:"cors"`
	Logging  LoggingConfig  `koanf:"logging"`
	Stats    StatsConfig    `koanf:"stats"`

	// SeedDemo loads a demo catalogue into an empty database on startup
	SeedDemo bool `koanf:"seed_demo"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string `koanf:"url"` // Full PostgreSQL URL
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

// StatsConfig holds settings for the statistics computations
type StatsConfig struct {
	// Timezone whose calendar defines "today" and whole-day gaps
	Timezone string `koanf:"timezone"`
}

// Location resolves the configured time zone
func (s StatsConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Load reads configuration from an optional TOML file named by ENCORE_CONFIG,
// then applies environment variables on top and validates the result.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Read layers defaults, the optional TOML file and the environment without
// validating, so callers can apply their own overrides first.
func Read() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := defaults()

	if path := os.Getenv("ENCORE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	cfg.loadCORS()
	cfg.loadLogging()
	cfg.loadStats()

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", SSLMode: "disable"},
		Server:   ServerConfig{Port: 8080, Host: "0.0.0.0"},
		CORS: CORSConfig{AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Stats:   StatsConfig{Timezone: "UTC"},
	}
}

func (c *Config) loadFile(path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return err
	}
	return k.Unmarshal("", c)
}

func (c *Config) loadDatabase() error {
	c.Database.URL = getEnvOrDefault("DATABASE_URL", c.Database.URL)
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = getEnvOrDefault("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnvOrDefault("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", c.Database.SSLMode)

	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}

	return nil
}

func (c *Config) loadServer() error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Server.Port = port
	}
	c.Server.Host = getEnvOrDefault("HOST", c.Server.Host)
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		return
	}
	var origins []string
	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", c.Logging.Format)
}

func (c *Config) loadStats() {
	c.Stats.Timezone = getEnvOrDefault("STATS_TIMEZONE", c.Stats.Timezone)
	if seed := os.Getenv("SEED_DEMO"); seed != "" {
		c.SeedDemo, _ = strconv.ParseBool(seed)
	}
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if _, err := c.Stats.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("STATS_TIMEZONE is not a known time zone: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
