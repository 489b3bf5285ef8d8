package tfconfig

import (
	"cmp"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/crowdsecurity/go-cs-lib/ptr"
)

const (
	defMaxSize  = 500
	defMaxFiles = 3
	defMaxAge   = 28
	defCompress = true
)

/*logging related stuff*/
type CommonCfg struct {
	LogMedia     string `yaml:"log_media,omitempty"` // stdout, file or syslog
	LogDir       string `yaml:"log_dir,omitempty"`   // if LogMedia = file
	LogLevel     string `yaml:"log_level,omitempty"`
	LogFormat    string `yaml:"log_format,omitempty"` // text or json
	LogMaxSize   int    `yaml:"log_max_size,omitempty"`
	LogMaxAge    int    `yaml:"log_max_age,omitempty"`
	LogMaxFiles  int    `yaml:"log_max_files,omitempty"`
	CompressLogs *bool  `yaml:"compress_logs,omitempty"`
	ForceColors  bool   `yaml:"force_color_logs,omitempty"`
}

func (c *CommonCfg) GetMedia() string {
	return c.LogMedia
}

func (c *CommonCfg) GetFormat() string {
	return c.LogFormat
}

func (c *CommonCfg) NewRotatingLogger(filename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(c.LogDir, filename),
		MaxSize:    cmp.Or(c.LogMaxSize, defMaxSize),
		MaxBackups: cmp.Or(c.LogMaxFiles, defMaxFiles),
		MaxAge:     cmp.Or(c.LogMaxAge, defMaxAge),
		Compress:   *cmp.Or(c.CompressLogs, ptr.Of(defCompress)),
	}
}

// Level parses LogLevel. An empty level returns 0, which callers treat as
// "keep the default".
func (c *CommonCfg) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return 0, nil
	}

	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level: %w", err)
	}

	return lvl, nil
}

func (c *Config) LoadCommon() error {
	if c.Common == nil {
		c.Common = &CommonCfg{}
	}

	if c.Common.LogMedia == "" {
		c.Common.LogMedia = "stdout"
	}

	switch c.Common.LogMedia {
	case "stdout", "syslog":
	case "file":
		if c.Common.LogDir == "" {
			return fmt.Errorf("log_dir is required when log_media is %q", c.Common.LogMedia)
		}

		dir, err := filepath.Abs(c.Common.LogDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute path of '%s': %w", c.Common.LogDir, err)
		}

		c.Common.LogDir = dir
	default:
		return fmt.Errorf("unknown log_media %q", c.Common.LogMedia)
	}

	if _, err := c.Common.Level(); err != nil {
		return err
	}

	return nil
}
