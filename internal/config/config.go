package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the process, sourced from the
// environment.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"        envDefault:":3000"`
	MongoURI        string        `env:"MONGODB_URI,required"`
	MongoDatabase   string        `env:"MONGODB_DATABASE" envDefault:"todoapi"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the configuration from the environment. A .env file in
// the working directory is loaded first when present, so local
// development does not need exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
