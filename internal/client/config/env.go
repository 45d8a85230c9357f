package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "CASIEC_"

// envConfig mirrors Config with pointers so unset variables are told apart
// from empty ones.
type envConfig struct {
	APIBaseURL     *string        `env:"API_BASE_URL"`
	DataDir        *string        `env:"DATA_DIR"`
	DatabasePath   *string        `env:"DATABASE_PATH"`
	PollInterval   *time.Duration `env:"POLL_INTERVAL"`
	ToastTTL       *time.Duration `env:"TOAST_TTL"`
	RequestTimeout *time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       *string        `env:"LOG_LEVEL"`
	LogFormat      *string        `env:"LOG_FORMAT"`
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

	apply(&cfg.APIBaseURL, ec.APIBaseURL)
	apply(&cfg.DataDir, ec.DataDir)
	apply(&cfg.DatabasePath, ec.DatabasePath)
	apply(&cfg.PollInterval, ec.PollInterval)
	apply(&cfg.ToastTTL, ec.ToastTTL)
	apply(&cfg.RequestTimeout, ec.RequestTimeout)
	apply(&cfg.LogLevel, ec.LogLevel)
	apply(&cfg.LogFormat, ec.LogFormat)
	return nil
}

func apply[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
