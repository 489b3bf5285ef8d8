package tfconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	"github.com/crowdsecurity/tailf/pkg/tailf"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "stdout", cfg.Common.LogMedia)
	assert.Equal(t, tailf.DefaultLevel, cfg.Tail.DefaultLevel)
	assert.Equal(t, tailf.DefaultPollInterval, cfg.Tail.PollInterval)
	assert.Equal(t, tailf.RegexEngineGo, cfg.Tail.RegexEngine)
	assert.Equal(t, tailf.DefaultSeedLines, cfg.Tail.SeedLines)
	assert.False(t, cfg.Prometheus.Enabled)
	assert.Equal(t, "127.0.0.1:6060", cfg.Prometheus.ListenURI())
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectedErr string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full configuration",
			yaml: `
common:
  log_media: stdout
  log_level: debug
  log_format: json
tail:
  filename: /var/log/app.log
  lines: 25
  line_filter: "ERROR|WARN"
  level_regex: '^\[(?P<level>\w+)\]'
  default_level: NOTICE
  poll_interval: 250ms
  regex_engine: re2
  log_level: trace
prometheus:
  enabled: true
  listen_addr: 0.0.0.0
  listen_port: 9100
`,
			check: func(t *testing.T, cfg *Config) {
				lvl, err := cfg.Common.Level()
				require.NoError(t, err)
				assert.Equal(t, log.DebugLevel, lvl)
				assert.Equal(t, "json", cfg.Common.GetFormat())

				assert.Equal(t, "/var/log/app.log", cfg.Tail.Filename)
				assert.Equal(t, 25, cfg.Tail.SeedLines)
				assert.Equal(t, "ERROR|WARN", cfg.Tail.LineFilter)
				assert.Equal(t, `^\[(?P<level>\w+)\]`, cfg.Tail.LevelPattern)
				assert.Equal(t, "NOTICE", cfg.Tail.DefaultLevel)
				assert.Equal(t, 250*time.Millisecond, cfg.Tail.PollInterval)
				assert.Equal(t, tailf.RegexEngineRE2, cfg.Tail.RegexEngine)

				tlvl, err := cfg.Tail.Level()
				require.NoError(t, err)
				assert.Equal(t, log.TraceLevel, tlvl)

				assert.True(t, cfg.Prometheus.Enabled)
				assert.Equal(t, "0.0.0.0:9100", cfg.Prometheus.ListenURI())
			},
		},
		{
			name: "empty file",
			yaml: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "stdout", cfg.Common.LogMedia)
				assert.Equal(t, tailf.DefaultPollInterval, cfg.Tail.PollInterval)
				assert.Equal(t, tailf.DefaultSeedLines, cfg.Tail.SeedLines)
			},
		},
		{
			name: "tail section without lines",
			yaml: "tail:\n  line_filter: ERROR",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, tailf.DefaultSeedLines, cfg.Tail.SeedLines)
			},
		},
		{
			name: "explicit zero lines",
			yaml: "tail:\n  lines: 0",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0, cfg.Tail.SeedLines)
			},
		},
		{
			name:        "unknown field",
			yaml:        "foobar: 1",
			expectedErr: `unknown field "foobar"`,
		},
		{
			name:        "bad common log level",
			yaml:        "common:\n  log_level: loud",
			expectedErr: "invalid log_level",
		},
		{
			name:        "bad tail log level",
			yaml:        "tail:\n  log_level: loud",
			expectedErr: "invalid tail log_level",
		},
		{
			name:        "unknown media",
			yaml:        "common:\n  log_media: pigeon",
			expectedErr: `unknown log_media "pigeon"`,
		},
		{
			name:        "file media without dir",
			yaml:        "common:\n  log_media: file",
			expectedErr: `log_dir is required when log_media is "file"`,
		},
		{
			name:        "negative lines",
			yaml:        "tail:\n  lines: -3",
			expectedErr: "invalid number of lines -3",
		},
		{
			name:        "bad prometheus port",
			yaml:        "prometheus:\n  listen_port: 70000",
			expectedErr: "invalid prometheus listen_port 70000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parseConfig([]byte(tc.yaml))
			cstest.RequireErrorContains(t, err, tc.expectedErr)

			if tc.expectedErr != "" {
				return
			}

			tc.check(t, cfg)
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tailf.yaml")

	require.NoError(t, os.WriteFile(path, []byte("common:\n  log_media: file\n  log_dir: ./logs\ntail:\n  lines: 3\n"), 0o644))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Common.LogDir))
	assert.Equal(t, 3, cfg.Tail.SeedLines)

	rl := cfg.Common.NewRotatingLogger("tailf.log")
	assert.Equal(t, filepath.Join(cfg.Common.LogDir, "tailf.log"), rl.Filename)
	assert.Equal(t, defMaxSize, rl.MaxSize)
	assert.True(t, rl.Compress)

	_, err = NewConfig(filepath.Join(dir, "missing.yaml"))
	cstest.RequireErrorContains(t, err, "while reading")

	cfg, err = NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, "stdout", cfg.Common.LogMedia)
}
