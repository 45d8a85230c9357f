package config

import (
	"github.com/dmitrijs2005/casiec/internal/flagx"
	"github.com/dmitrijs2005/casiec/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Unset fields leave
// the current value alone.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	DataDir        string         `json:"data_dir" yaml:"data_dir"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	PollInterval   timex.Duration `json:"poll_interval" yaml:"poll_interval"`
	ToastTTL       timex.Duration `json:"toast_ttl" yaml:"toast_ttl"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
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

	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.PollInterval.Duration > 0 {
		cfg.PollInterval = fc.PollInterval.Duration
	}
	if fc.ToastTTL.Duration > 0 {
		cfg.ToastTTL = fc.ToastTTL.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
