// Package config loads process configuration from RPG_COMBAT_* environment
// variables
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "RPG_COMBAT_"

// Session stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the process configuration. Command-line flags may override
// fields after Load and before Validate.
type Config struct {
	GRPCPort        int           `env:"GRPC_PORT" envDefault:"50051"`
	SessionStore    string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	RollLogTTL      time.Duration `env:"ROLL_LOG_TTL" envDefault:"15m"`
	MaxRounds       int           `env:"MAX_ROUNDS" envDefault:"50"`
	EquipmentLookup bool          `env:"EQUIPMENT_LOOKUP" envDefault:"false"`
	EquipmentAPIURL string        `env:"EQUIPMENT_API_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config with defaults applied
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment.
// A nil map reads the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	return cfg, nil
}

// Validate checks ranges and cross-field requirements
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPCPort", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("MaxRounds", c.MaxRounds, 1, 1000, vb)
	errors.ValidateEnum("SessionStore", c.SessionStore, []string{StoreMemory, StoreRedis}, vb)
	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)

	if c.SessionStore == StoreRedis && c.RedisAddr == "" {
		vb.RequiredField("RedisAddr")
	}
	if c.SessionTTL <= 0 {
		vb.Field("SessionTTL", "must be positive")
	}
	if c.RollLogTTL <= 0 {
		vb.Field("RollLogTTL", "must be positive")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
