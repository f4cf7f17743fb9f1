// Package config provides Viper-based configuration loading for the dice roller.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. DICE_ROLLER_SERVER_GRPC_PORT
const EnvPrefix = "DICE_ROLLER"

// Storage backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ServerConfig holds listener settings
type ServerConfig struct {
	GRPCPort int `mapstructure:"grpc_port"`
	// HTTPPort 0 disables the HTTP API
	HTTPPort        int           `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GRPCAddr returns the gRPC listen address
func (s ServerConfig) GRPCAddr() string {
	return fmt.Sprintf(":%d", s.GRPCPort)
}

// HTTPAddr returns the HTTP listen address
func (s ServerConfig) HTTPAddr() string {
	return fmt.Sprintf(":%d", s.HTTPPort)
}

// StorageConfig selects where displays live
type StorageConfig struct {
	// Backend is "memory" or "redis"
	Backend    string        `mapstructure:"backend"`
	RedisAddr  string        `mapstructure:"redis_addr"`
	DisplayTTL time.Duration `mapstructure:"display_ttl"`
}

// LimitsConfig caps request sizes. Zero disables a cap.
type LimitsConfig struct {
	MaxSides int `mapstructure:"max_sides"`
	MaxDice  int `mapstructure:"max_dice"`
	MaxRolls int `mapstructure:"max_rolls"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks every setting and reports all violations at once
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.grpc_port", c.Server.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("server.http_port", c.Server.HTTPPort, 0, 65535, vb)
	if c.Server.ShutdownTimeout <= 0 {
		vb.Field("server.shutdown_timeout", "must be positive")
	}

	errors.ValidateEnum("storage.backend", c.Storage.Backend, []string{BackendMemory, BackendRedis}, vb)
	if c.Storage.Backend == BackendRedis && c.Storage.RedisAddr == "" {
		vb.Field("storage.redis_addr", "is required for the redis backend")
	}
	if c.Storage.DisplayTTL <= 0 {
		vb.Field("storage.display_ttl", "must be positive")
	}

	errors.ValidateMin("limits.max_sides", c.Limits.MaxSides, 0, vb)
	errors.ValidateMin("limits.max_dice", c.Limits.MaxDice, 0, vb)
	errors.ValidateMin("limits.max_rolls", c.Limits.MaxRolls, 0, vb)

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"text", "json"}, vb)

	return vb.Build()
}

// NewViper returns a Viper instance with defaults and environment overrides.
// When path is not empty the YAML file there is read as well.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	return v, nil
}

// Load reads the optional file at path, applies environment overrides and
// validates the result
func Load(path string) (Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return Config{}, err
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance,
// e.g. one with command line flags bound
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshalling config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.display_ttl", "15m")

	v.SetDefault("limits.max_sides", 1000)
	v.SetDefault("limits.max_dice", 1000)
	v.SetDefault("limits.max_rolls", 1000000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
