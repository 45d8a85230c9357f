package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "CASIEC_"

type envConfig struct {
	Addr                 *string        `env:"ADDR"`
	DatabaseDSN          *string        `env:"DATABASE_DSN"`
	SecretKey            *string        `env:"SECRET_KEY"`
	AccessTokenValidity  *time.Duration `env:"ACCESS_TOKEN_VALIDITY"`
	RefreshTokenValidity *time.Duration `env:"REFRESH_TOKEN_VALIDITY"`
	OTPValidity          *time.Duration `env:"OTP_VALIDITY"`
	AdminEmail           *string        `env:"ADMIN_EMAIL"`
	AdminPassword        *string        `env:"ADMIN_PASSWORD"`
	AllowedOrigins       []string       `env:"ALLOWED_ORIGINS" envSeparator:","`
	S3RootUser           *string        `env:"S3_ROOT_USER"`
	S3RootPassword       *string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket             *string        `env:"S3_BUCKET"`
	S3Region             *string        `env:"S3_REGION"`
	S3BaseEndpoint       *string        `env:"S3_BASE_ENDPOINT"`
	LogLevel             *string        `env:"LOG_LEVEL"`
	LogFormat            *string        `env:"LOG_FORMAT"`
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			out[k] = v
		}
	}
	return out
}

func parseEnv(cfg *Config, vars map[string]string) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix, Environment: vars}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	apply(&cfg.Addr, ec.Addr)
	apply(&cfg.DatabaseDSN, ec.DatabaseDSN)
	apply(&cfg.SecretKey, ec.SecretKey)
	apply(&cfg.AccessTokenValidityDuration, ec.AccessTokenValidity)
	apply(&cfg.RefreshTokenValidityDuration, ec.RefreshTokenValidity)
	apply(&cfg.OTPValidityDuration, ec.OTPValidity)
	apply(&cfg.AdminEmail, ec.AdminEmail)
	apply(&cfg.AdminPassword, ec.AdminPassword)
	if len(ec.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = ec.AllowedOrigins
	}
	apply(&cfg.S3RootUser, ec.S3RootUser)
	apply(&cfg.S3RootPassword, ec.S3RootPassword)
	apply(&cfg.S3Bucket, ec.S3Bucket)
	apply(&cfg.S3Region, ec.S3Region)
	apply(&cfg.S3BaseEndpoint, ec.S3BaseEndpoint)
	apply(&cfg.LogLevel, ec.LogLevel)
	apply(&cfg.LogFormat, ec.LogFormat)
	return nil
}

func apply[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
