package tailf

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultLevel        = "INFO"
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultSeedLines is what front ends use when the user does not ask for
	// a number. A zero Config.SeedLines means no seed.
	DefaultSeedLines = 10

	RegexEngineGo  = "go"
	RegexEngineRE2 = "re2"

	// levelGroup is the named capture group a level pattern must define.
	levelGroup = "level"
)

// Config describes a single followed file. It is copied into the session
// at construction time and never changes afterwards.
type Config struct {
	Filename     string        `yaml:"filename"`
	SeedLines    int           `yaml:"lines,omitempty"`
	LineFilter   string        `yaml:"line_filter,omitempty"`
	LevelPattern string        `yaml:"level_regex,omitempty"`
	DefaultLevel string        `yaml:"default_level,omitempty"`
	// PollInterval < 0 disables the ticker: polls only happen on request.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	RegexEngine  string        `yaml:"regex_engine,omitempty"`
}

// SetDefaults fills the zero values with the package defaults.
func (c *Config) SetDefaults() {
	if c.DefaultLevel == "" {
		c.DefaultLevel = DefaultLevel
	}

	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.RegexEngine == "" {
		c.RegexEngine = RegexEngineGo
	}
}

func (c *Config) Validate() error {
	if c.Filename == "" {
		return errors.New("no filename provided")
	}

	if c.SeedLines < 0 {
		return fmt.Errorf("invalid number of seed lines %d: must be >= 0", c.SeedLines)
	}

	switch c.RegexEngine {
	case RegexEngineGo, RegexEngineRE2:
	default:
		return fmt.Errorf("unknown regex engine %q (supported: %s, %s)", c.RegexEngine, RegexEngineGo, RegexEngineRE2)
	}

	return nil
}
