package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envConfig carries no defaults: unset variables stay zero and do not
// override earlier layers.
type envConfig struct {
	HTTPAddr           string        `env:"HTTP_ADDR"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	SecretKey          string        `env:"SECRET_KEY"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL"`
	BcryptCost         int           `env:"BCRYPT_COST"`
	LogLevel           string        `env:"LOG_LEVEL"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// parseEnv loads dotenv (if it exists) into the process environment without
// overriding variables already set, then overlays the environment on config.
func parseEnv(config *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	var e envConfig
	if err := cleanenv.ReadEnv(&e); err != nil {
		return fmt.Errorf("read env: %w", err)
	}

	setString(&config.HTTPAddr, e.HTTPAddr)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.LogLevel, e.LogLevel)
	if e.AccessTokenTTL != 0 {
		config.AccessTokenValidityDuration = e.AccessTokenTTL
	}
	if e.ShutdownTimeout != 0 {
		config.ShutdownTimeout = e.ShutdownTimeout
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if len(e.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = e.CORSAllowedOrigins
	}
	return nil
}
