package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:3000", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.PollInterval)
	assert.Equal(t, 5*time.Second, c.ToastTTL)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "casiec.db", c.DatabasePath)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := load(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_base_url: https://file.example
data_dir: /var/lib/casiec
poll_interval: 30s
toast_ttl: 2s
log_level: info
`), 0o600))

	env := map[string]string{
		"CASIEC_API_BASE_URL": "https://env.example",
		"CASIEC_TOAST_TTL":    "7s",
		"UNRELATED":           "x",
	}
	args := []string{"-c", path, "-a", "https://flag.example", "-unknown", "v"}

	cfg, err := load(args, env)
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "https://flag.example"
	want.DataDir = "/var/lib/casiec"
	want.PollInterval = 30 * time.Second
	want.ToastTTL = 7 * time.Second
	want.LogLevel = "info"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"poll_interval": 15000000000, "database_path": "/tmp/s.db"}`), 0o600))

	cfg, err := load([]string{"-config=" + path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
	assert.Equal(t, "/tmp/s.db", cfg.DatabasePath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "bad interval flag", args: []string{"-i", "abc"}},
		{name: "zero interval flag", args: []string{"-i", "0"}},
		{name: "bad env duration", env: map[string]string{"CASIEC_POLL_INTERVAL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args, tt.env)
			require.Error(t, err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseFlags(cfg, []string{"-a", "http://10.0.0.1:3000", "-i", "20", "-d", "/tmp/x.db", "-l", "debug"}))

	want := defaults()
	want.APIBaseURL = "http://10.0.0.1:3000"
	want.PollInterval = 20 * time.Second
	want.DatabasePath = "/tmp/x.db"
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_PanicsOnBadFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"console", "-i", "abc"}
	require.Panics(t, func() { LoadConfig() })

	os.Args = []string{"console"}
	require.NotPanics(t, func() { LoadConfig() })
}
