// Package config loads the portal configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds every tunable the portal reads at boot.
type Config struct {
	Port string `env:"PORT" envDefault:"8081"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"sipdesk.db"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	S3Bucket        string `env:"S3_BUCKET" envDefault:"maintenance-proofs"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL" envDefault:"http://localhost:9000/maintenance-proofs"`

	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-3-flash-preview"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
