package logging

import (
	"errors"
	"fmt"
)

func setupSyslogDefault(_ string) error {
	return fmt.Errorf("log_media %q: %w", "syslog", errors.ErrUnsupported)
}
