package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings, loaded once from the environment at
// startup and passed down explicitly.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogMode    string `env:"LOG_MODE" envDefault:"development"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"cars"`

	// RedisAddr enables the owner lookup cache when set.
	RedisAddr     string        `env:"REDIS_ADDR"`
	OwnerCacheTTL time.Duration `env:"OWNER_CACHE_TTL" envDefault:"1m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
