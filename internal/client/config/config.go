package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the console.
type Config struct {
	APIBaseURL     string
	DataDir        string
	DatabasePath   string
	PollInterval   time.Duration
	ToastTTL       time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.DataDir = "."
	c.DatabasePath = "casiec.db"
	c.PollInterval = 10 * time.Second
	c.ToastTTL = 5 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the config file, the environment
// and os.Args, in that order. It panics on malformed input.
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
