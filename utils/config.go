package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "quick-translate.yaml"

const (
	EnvFrom     = "QUICK_TRANSLATE_FROM"
	EnvTo       = "QUICK_TRANSLATE_TO"
	EnvThreads  = "QUICK_TRANSLATE_THREADS"
	EnvEndpoint = "QUICK_TRANSLATE_ENDPOINT"
	EnvEngine   = "QUICK_TRANSLATE_ENGINE"
	EnvTimeout  = "QUICK_TRANSLATE_TIMEOUT"
)

// Config holds the command-line defaults. Precedence is flags, then
// environment, then the YAML file, then the built-in defaults.
type Config struct {
	From      string        `yaml:"from"`
	To        string        `yaml:"to"`
	Threads   int           `yaml:"threads"`
	Endpoint  string        `yaml:"endpoint"`
	Engine    string        `yaml:"engine"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	ExportDir string        `yaml:"export_dir"`
}

func DefaultConfig() Config {
	return Config{
		From:      "auto",
		To:        "vi",
		Threads:   4,
		Engine:    "scan",
		Timeout:   30 * time.Second,
		ExportDir: "exports",
	}
}

// LoadConfig reads the YAML file at path. An empty path falls back to
// DefaultConfigFile, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &config, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	config.merge(fromFile)

	return &config, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookupNonEmpty(lookup, EnvFrom); ok {
		c.From = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvTo); ok {
		c.To = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvEndpoint); ok {
		c.Endpoint = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvEngine); ok {
		c.Engine = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvThreads); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvThreads, err)
		}
		c.Threads = n
	}
	if v, ok := lookupNonEmpty(lookup, EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// merge copies every non-zero field of other into c.
func (c *Config) merge(other Config) {
	if other.From != "" {
		c.From = other.From
	}
	if other.To != "" {
		c.To = other.To
	}
	if other.Threads != 0 {
		c.Threads = other.Threads
	}
	if other.Endpoint != "" {
		c.Endpoint = other.Endpoint
	}
	if other.Engine != "" {
		c.Engine = other.Engine
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.ExportDir != "" {
		c.ExportDir = other.ExportDir
	}
}

func lookupNonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
