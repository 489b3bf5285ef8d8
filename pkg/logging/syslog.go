//go:build !windows

package logging

import (
	"fmt"
	"log/syslog"
	"strings"

	"github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// setupSyslogDefault sends the log to the local syslog daemon, tagged like the
// log file name so several instances can be told apart.
func setupSyslogDefault(followed string) error {
	tag := strings.TrimSuffix(LogFilename(followed), ".log")

	hook, err := lsyslog.NewSyslogHook("", "", syslog.LOG_INFO|syslog.LOG_DAEMON, tag)
	if err != nil {
		return fmt.Errorf("unable to connect to syslog: %w", err)
	}

	logrus.AddHook(hook)

	return nil
}
