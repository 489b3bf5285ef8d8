package tfconfig

import (
	"fmt"
	"net"
	"strconv"
)

type PrometheusCfg struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr,omitempty"`
	ListenPort int    `yaml:"listen_port,omitempty"`
}

func (c *PrometheusCfg) ListenURI() string {
	return net.JoinHostPort(c.ListenAddr, strconv.Itoa(c.ListenPort))
}

func (c *Config) LoadPrometheus() error {
	if c.Prometheus == nil {
		c.Prometheus = &PrometheusCfg{}
	}

	if c.Prometheus.ListenAddr == "" {
		c.Prometheus.ListenAddr = "127.0.0.1"
	}

	if c.Prometheus.ListenPort == 0 {
		c.Prometheus.ListenPort = 6060
	}

	if c.Prometheus.ListenPort < 0 || c.Prometheus.ListenPort > 65535 {
		return fmt.Errorf("invalid prometheus listen_port %d", c.Prometheus.ListenPort)
	}

	return nil
}
