package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config holds every setting of the mdlens binary. Values come from an
// optional mdlens.env file and are overridden by environment variables.
type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	StoreBackend      string        `mapstructure:"STORE_BACKEND"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	DocumentTTL       time.Duration `mapstructure:"DOCUMENT_TTL"`
	MaxDocumentBytes  int64         `mapstructure:"MAX_DOCUMENT_BYTES"`
	MaxQueryLength    int           `mapstructure:"MAX_QUERY_LENGTH"`
	TabWidth          int           `mapstructure:"TAB_WIDTH"`
}

var defaults = map[string]any{
	"ENVIRONMENT":         EnvironmentProduction,
	"LOG_LEVEL":           "info",
	"HTTP_SERVER_ADDRESS": ":8090",
	"STORE_BACKEND":       BackendMemory,
	"REDIS_ADDRESS":       "localhost:6379",
	"DOCUMENT_TTL":        "0s",
	"MAX_DOCUMENT_BYTES":  1 << 20,
	"MAX_QUERY_LENGTH":    256,
	"TAB_WIDTH":           4,
}

// LoadConfig reads mdlens.env from path when present, applies environment
// overrides and validates the result.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AddConfigPath(path)
	v.SetConfigName("mdlens")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	config.StoreBackend = strings.ToLower(strings.TrimSpace(config.StoreBackend))
	err = config.Validate()
	return
}

// Validate rejects settings the binary cannot run with.
func (c Config) Validate() error {
	var problems []string
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddress == "" {
			problems = append(problems, "REDIS_ADDRESS is required for the redis backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.HTTPServerAddress == "" {
		problems = append(problems, "HTTP_SERVER_ADDRESS is empty")
	}
	if c.MaxDocumentBytes <= 0 {
		problems = append(problems, "MAX_DOCUMENT_BYTES must be positive")
	}
	if c.MaxQueryLength <= 0 {
		problems = append(problems, "MAX_QUERY_LENGTH must be positive")
	}
	if c.TabWidth <= 0 {
		problems = append(problems, "TAB_WIDTH must be positive")
	}
	if c.DocumentTTL < 0 {
		problems = append(problems, "DOCUMENT_TTL must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q", c.LogLevel))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment reports whether human readable logs are wanted.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// Level returns the configured log level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
