package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Server settings
	DefaultServerURL      = "https://ingest.hostfacts.dev/v1/reports"
	DefaultTimeoutSeconds = 10

	// Kernel interface roots, overridable for tests and chroot inspection
	DefaultProcRoot = "/proc"
	DefaultSysRoot  = "/sys"
	DefaultEtcRoot  = "/etc"

	// Config file path
	DefaultConfigPath = "/etc/hostfacts/config.yaml"
)

// Build metadata (injected at build time via ldflags)
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Config holds everything the collector and the report sender need.
// The zero value is not usable; obtain one through Default or Load.
type Config struct {
	ServerURL      string `yaml:"server_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Debug          bool   `yaml:"debug"`

	// Roots for the kernel pseudo-filesystems the probes read. Pointing
	// these at a fixture tree makes every probe testable without a real
	// kernel underneath.
	ProcRoot string `yaml:"proc_root"`
	SysRoot  string `yaml:"sys_root"`
	EtcRoot  string `yaml:"etc_root"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		ProcRoot:       DefaultProcRoot,
		SysRoot:        DefaultSysRoot,
		EtcRoot:        DefaultEtcRoot,
	}
}

// Load reads the YAML config at path and applies HOSTFACTS_* environment
// overrides on top. A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// Save writes the config as YAML. Mode 0600 because the file may carry
// the API token.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Environment variables always win over file values when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOSTFACTS_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("HOSTFACTS_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("HOSTFACTS_DEBUG"); v != "" {
		c.Debug = v == "true" || v == "1"
	}
}

// Fields left empty by the file or the environment fall back to defaults.
func (c *Config) normalize() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.ProcRoot == "" {
		c.ProcRoot = DefaultProcRoot
	}
	if c.SysRoot == "" {
		c.SysRoot = DefaultSysRoot
	}
	if c.EtcRoot == "" {
		c.EtcRoot = DefaultEtcRoot
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RequireToken returns the API token or an error telling the operator
// where to put one.
func (c *Config) RequireToken() (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("no API token configured (set token in %s or HOSTFACTS_TOKEN)", DefaultConfigPath)
	}
	return c.Token, nil
}

// Paths to the kernel interfaces the probes read, rooted at the
// configured pseudo-filesystem roots.

func (c *Config) CPUInfoPath() string {
	return filepath.Join(c.ProcRoot, "cpuinfo")
}

func (c *Config) MemInfoPath() string {
	return filepath.Join(c.ProcRoot, "meminfo")
}

func (c *Config) KernelVersionPath() string {
	return filepath.Join(c.ProcRoot, "version")
}

func (c *Config) OSReleasePath() string {
	return filepath.Join(c.EtcRoot, "os-release")
}

func (c *Config) CPUTopologyDir() string {
	return filepath.Join(c.SysRoot, "devices", "system", "cpu")
}

func (c *Config) CPUFreqDir() string {
	return filepath.Join(c.SysRoot, "devices", "system", "cpu", "cpufreq")
}
