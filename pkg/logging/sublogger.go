package logging

import (
	"github.com/sirupsen/logrus"
)

// SubLogger returns the entry handed to a tail session. The underlying
// logger shares formatter, output and hooks with base but runs at its own
// level, so one file can be debugged without raising the global level.
//
// If level == 0 (panic), the base level is inherited.
func SubLogger(base *logrus.Logger, level logrus.Level, filename string) *logrus.Entry {
	l := logrus.New()
	l.SetFormatter(base.Formatter)
	l.SetOutput(base.Out)

	for _, hooks := range base.Hooks {
		for _, h := range hooks {
			l.AddHook(h)
		}
	}

	if level == 0 {
		level = base.GetLevel()
	}

	l.SetLevel(level)

	return l.WithField("file", filename)
}
