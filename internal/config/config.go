// Package config loads the TOML configuration consumed by the
// command-line tools in cmd/.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ServeConfig configures cmd/xswire-serve.
type ServeConfig struct {
	Addr        string   `toml:"addr"`
	PayloadMax  int      `toml:"payload_max"`
	CorsOrigins []string `toml:"cors_origins"`
	MetricsPath string   `toml:"metrics_path"`
}

// DumpConfig configures cmd/xswire-dump.
type DumpConfig struct {
	InputPath  string `toml:"input_path"`
	PayloadMax int    `toml:"payload_max"`
}

// SSHTransportConfig configures internal/transport/sshconn.
type SSHTransportConfig struct {
	Host           string `toml:"host"`
	Port           string `toml:"port"`
	User           string `toml:"user"`
	KeyPath        string `toml:"key_path"`
	KnownHostsPath string `toml:"known_hosts_path"`
}

// DefaultServeConfig returns the zero-configuration defaults for the
// debug server.
func DefaultServeConfig() ServeConfig {
	return ServeConfig{
		Addr:        ":9191",
		PayloadMax:  4096,
		MetricsPath: "/metrics",
	}
}

// LoadServeConfig reads path as TOML, applying overrides on top of
// DefaultServeConfig. A field absent from the file keeps its default.
func LoadServeConfig(path string) (ServeConfig, error) {
	cfg := DefaultServeConfig()

	var raw ServeConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ServeConfig{}, fmt.Errorf("config: load serve config (%s): %w", path, err)
	}

	if meta.IsDefined("addr") && strings.TrimSpace(raw.Addr) != "" {
		cfg.Addr = raw.Addr
	}
	if meta.IsDefined("payload_max") && raw.PayloadMax > 0 {
		cfg.PayloadMax = raw.PayloadMax
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("metrics_path") && strings.TrimSpace(raw.MetricsPath) != "" {
		cfg.MetricsPath = raw.MetricsPath
	}
	return cfg, nil
}

// LoadDumpConfig reads path as TOML for cmd/xswire-dump. PayloadMax
// falls back to the wire default when the file is absent or silent on
// the field.
func LoadDumpConfig(path string) (DumpConfig, error) {
	cfg := DumpConfig{PayloadMax: 4096}
	if path == "" {
		return cfg, nil
	}
	var raw DumpConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DumpConfig{}, fmt.Errorf("config: load dump config (%s): %w", path, err)
	}
	if meta.IsDefined("input_path") {
		cfg.InputPath = raw.InputPath
	}
	if meta.IsDefined("payload_max") && raw.PayloadMax > 0 {
		cfg.PayloadMax = raw.PayloadMax
	}
	return cfg, nil
}

// LoadSSHTransportConfig reads path as TOML for the SSH channel
// adapter.
func LoadSSHTransportConfig(path string) (SSHTransportConfig, error) {
	var cfg SSHTransportConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return SSHTransportConfig{}, fmt.Errorf("config: load ssh transport config (%s): %w", path, err)
	}
	if cfg.Port == "" {
		cfg.Port = "22"
	}
	return cfg, nil
}
