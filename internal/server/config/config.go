// Package config handles configuration for the reference backend: defaults,
// an optional JSON or YAML file, CASIEC_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CASIEC backend.
//
// Fields:
//   - Addr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - OTPValidityDuration: lifetime of an emailed sign-in code.
//   - AdminEmail / AdminPassword: staff account created at start-up when missing.
//   - AllowedOrigins: CORS origins allowed to call the API.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. An empty
//     bucket disables image uploads.
type Config struct {
	Addr                         string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	OTPValidityDuration          time.Duration
	AdminEmail                   string
	AdminPassword                string
	AllowedOrigins               []string
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	LogLevel                     string
	LogFormat                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":3000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.OTPValidityDuration = 5 * time.Minute
	c.AdminEmail = "admin@casiec.ng"
	c.AdminPassword = "changeme"
	c.AllowedOrigins = []string{"*"}
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config from defaults, the config file, the environment
// and os.Args. It panics on malformed input.
func LoadConfig() *Config {
	cfg, err := load(os.Args[1:], environ())
	if err != nil {
		panic(err)
	}
	return cfg
}

func load(args []string, env map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
