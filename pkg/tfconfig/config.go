// Package tfconfig loads the optional YAML configuration file of the tailf
// command. Every section has defaults, so an empty or missing file is valid.
package tfconfig

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Common     *CommonCfg     `yaml:"common,omitempty"`
	Tail       *TailCfg       `yaml:"tail,omitempty"`
	Prometheus *PrometheusCfg `yaml:"prometheus,omitempty"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.load()

	return cfg
}

// NewConfig reads and validates configFile. An empty path yields the defaults.
func NewConfig(configFile string) (*Config, error) {
	if configFile == "" {
		return NewDefaultConfig(), nil
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", configFile, err)
	}

	cfg, err := parseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", configFile, err)
	}

	return cfg, nil
}

func parseConfig(content []byte) (*Config, error) {
	cfg := &Config{}

	if err := yaml.UnmarshalWithOptions(content, cfg, yaml.Strict()); err != nil {
		return nil, errors.New(yaml.FormatError(err, false, false))
	}

	if cfg.Tail != nil {
		set, err := seedLinesSet(content)
		if err != nil {
			return nil, err
		}

		cfg.Tail.seedLinesSet = set
	}

	if err := cfg.load(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) load() error {
	if err := c.LoadCommon(); err != nil {
		return err
	}

	if err := c.LoadTail(); err != nil {
		return err
	}

	return c.LoadPrometheus()
}

// seedLinesSet reports whether the tail section has a "lines" key.
func seedLinesSet(content []byte) (bool, error) {
	var probe struct {
		Tail struct {
			Lines *int `yaml:"lines"`
		} `yaml:"tail"`
	}

	if err := yaml.Unmarshal(content, &probe); err != nil {
		return false, errors.New(yaml.FormatError(err, false, false))
	}

	return probe.Tail.Lines != nil, nil
}
