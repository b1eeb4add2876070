package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables the original deployment used.
// Pointer fields stay nil when the variable is unset, so the overlay only
// touches what is actually configured.
type envConfig struct {
	EndpointAddr          *string        `env:"ADDRESS"`
	DatabaseDSN           *string        `env:"DATABASE_DSN"`
	SecretKey             *string        `env:"JWT_SECRET"`
	TokenValidityDuration *time.Duration `env:"TOKEN_TTL"`
}

func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = *c.TokenValidityDuration
	}
}
