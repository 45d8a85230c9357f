package config

import (
	"time"

	"github.com/dmitrijs2005/casiec/internal/flagx"
	"github.com/dmitrijs2005/casiec/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration.
type FileConfig struct {
	Addr                 string         `json:"addr" yaml:"addr"`
	DatabaseDSN          string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey            string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidity  timex.Duration `json:"access_token_validity" yaml:"access_token_validity"`
	RefreshTokenValidity timex.Duration `json:"refresh_token_validity" yaml:"refresh_token_validity"`
	OTPValidity          timex.Duration `json:"otp_validity" yaml:"otp_validity"`
	AdminEmail           string         `json:"admin_email" yaml:"admin_email"`
	AdminPassword        string         `json:"admin_password" yaml:"admin_password"`
	AllowedOrigins       []string       `json:"allowed_origins" yaml:"allowed_origins"`
	S3RootUser           string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region             string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
	LogFormat            string         `json:"log_format" yaml:"log_format"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFromArgs(args)
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		return err
	}

	setString(&cfg.Addr, fc.Addr)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.SecretKey, fc.SecretKey)
	setDuration(&cfg.AccessTokenValidityDuration, fc.AccessTokenValidity)
	setDuration(&cfg.RefreshTokenValidityDuration, fc.RefreshTokenValidity)
	setDuration(&cfg.OTPValidityDuration, fc.OTPValidity)
	setString(&cfg.AdminEmail, fc.AdminEmail)
	setString(&cfg.AdminPassword, fc.AdminPassword)
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	setString(&cfg.S3RootUser, fc.S3RootUser)
	setString(&cfg.S3RootPassword, fc.S3RootPassword)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration > 0 {
		*dst = v.Duration
	}
}
