package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// UpstreamBaseURL is the external ReserveAqui REST API this gateway
	// consumes for all persistence and business logic.
	UpstreamBaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:8000/api"`

	// SessionSecret signs the session cookie. Required outside development.
	SessionSecret string        `env:"SESSION_SECRET, default=dev-session-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
