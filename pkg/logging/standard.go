package logging

import (
	"cmp"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defLogLevel    = logrus.InfoLevel
	defLogFilename = "tailf.log"
)

// LogFilename names the rotating log file of a session following path:
// "/var/log/app.log" logs to "tailf-app.log". Several tailf processes can
// share a log_dir this way.
func LogFilename(followed string) string {
	base := filepath.Base(followed)
	if followed == "" || base == "." || base == string(filepath.Separator) {
		return defLogFilename
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return defLogFilename
	}

	return "tailf-" + base + ".log"
}

func newFormatter(format string, forceColors bool) (logrus.Formatter, error) {
	switch format {
	case "text", "":
		return &logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
			ForceColors:     forceColors,
		}, nil
	case "json":
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339}, nil
	default:
		return nil, fmt.Errorf("unknown log_format %q", format)
	}
}

// newOutput returns the writer for the configured media. Syslog is not a
// writer: it installs a hook and the returned writer discards everything.
func newOutput(cfg LogConfig, followed string) (io.Writer, error) {
	switch cfg.GetMedia() {
	case "file":
		return cfg.NewRotatingLogger(LogFilename(followed)), nil
	case "syslog":
		if err := setupSyslogDefault(followed); err != nil {
			return nil, err
		}

		return io.Discard, nil
	case "stdout", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown log_media %q", cfg.GetMedia())
	}
}

// SetupStandardLogger configures the global logger for a tailf process
// following followed. Every component deriving its entry from
// logrus.StandardLogger() (directly or through SubLogger) inherits it.
// Nothing is changed if the configuration is invalid.
func SetupStandardLogger(cfg LogConfig, level logrus.Level, forceColors bool, followed string) error {
	formatter, err := newFormatter(cfg.GetFormat(), forceColors)
	if err != nil {
		return err
	}

	out, err := newOutput(cfg, followed)
	if err != nil {
		return err
	}

	if out != nil {
		logrus.SetOutput(out)
	}

	logrus.SetFormatter(formatter)
	logrus.SetLevel(cmp.Or(level, defLogLevel))

	return nil
}
