package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig is implemented by the configuration section holding the log
// settings, so this package does not depend on the config loader.
type LogConfig interface {
	GetFormat() string
	GetMedia() string
	NewRotatingLogger(filename string) *lumberjack.Logger
}
