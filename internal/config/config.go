// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first (if present), then the
// process environment is decoded with go-envconfig and checked with validator.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

type Config struct {
	StoreDriver  string `env:"STORE_DRIVER,  default=json"                validate:"oneof=json sqlite"`
	DataFile     string `env:"DATA_FILE,     default=names.json"          validate:"required"`
	SQLitePath   string `env:"SQLITE_PATH,   default=./data/guessgame.db" validate:"required"`
	ChallengeLog string `env:"CHALLENGE_LOG, default=challenge_log.txt"   validate:"required"`

	Game Game
	Log  Log

	HTTPAddr string `env:"HTTP_ADDR, default=:5175" validate:"required"`
}

// Game holds the round and challenge tunables.
type Game struct {
	GuessTimeout      time.Duration `env:"GUESS_TIMEOUT,      default=10s" validate:"gt=0"`
	ChallengeAttempts int           `env:"CHALLENGE_ATTEMPTS, default=5"   validate:"min=1"`
	ChallengeRange    int           `env:"CHALLENGE_RANGE,    default=30"  validate:"min=2"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL,  default=info"`
	File   string `env:"LOG_FILE,   default=guessgame.log"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// Load reads .env (best effort) and decodes the environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return decode(ctx, envconfig.OsLookuper())
}

func decode(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}
