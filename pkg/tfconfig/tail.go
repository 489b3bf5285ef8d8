package tfconfig

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/crowdsecurity/tailf/pkg/tailf"
)

// TailCfg is the session configuration plus the level of its own logger.
type TailCfg struct {
	tailf.Config `yaml:",inline"`
	LogLevel     string `yaml:"log_level,omitempty"`

	// 0 is a valid number of lines, so presence is tracked separately
	seedLinesSet bool
}

func (c *TailCfg) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return 0, nil
	}

	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid tail log_level: %w", err)
	}

	return lvl, nil
}

// LoadTail applies defaults. The filename may still be empty here: it
// usually comes from the command line and is checked by tailf.New.
func (c *Config) LoadTail() error {
	if c.Tail == nil {
		c.Tail = &TailCfg{}
	}

	if !c.Tail.seedLinesSet {
		c.Tail.SeedLines = tailf.DefaultSeedLines
	}

	c.Tail.SetDefaults()

	if c.Tail.SeedLines < 0 {
		return fmt.Errorf("invalid number of lines %d: must be >= 0", c.Tail.SeedLines)
	}

	if _, err := c.Tail.Level(); err != nil {
		return err
	}

	return nil
}
