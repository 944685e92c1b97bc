// Package config handles resolving configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	goyaml "gopkg.in/yaml.v3"
)

// Config is the process configuration, resolved from the YAML config file
// with command-line flags layered on top.
type Config struct {
	// ListenAddr is the address the HTTP gateway binds to.
	ListenAddr string `koanf:"listen_addr" yaml:"listen_addr"`
	// AdminKey is the shared secret gating account creation. It must be set
	// before the service will serve requests.
	AdminKey string `koanf:"admin_key" yaml:"admin_key"`
	// DBFilepath locates the SQLite file backing the key-value store.
	DBFilepath string `koanf:"db_filepath" yaml:"db_filepath"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// DevMode enables request logging and source locations in log output.
	DevMode bool `koanf:"dev_mode" yaml:"dev_mode"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "janus.yaml")
}

// Default returns a config with all default values populated. Note that this
// configuration is not servable, as the user must set admin_key.
func Default() *Config {
	return &Config{
		ListenAddr: "localhost:9980",
		AdminKey:   "", // must be set by the user
		DBFilepath: filepath.Join(xdg.DataHome, "janus", "db.sqlite"),
		LogLevel:   "info",
		DevMode:    false,
	}
}

// Load reads the YAML config file at path, merges it over the defaults, and
// layers any set flags on top. Flags may be nil. The returned error wraps
// [os.ErrNotExist] when the file is missing so callers can offer to create
// one.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to apply flag overrides: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("config validation failed: unknown log_level %q", cfg.LogLevel)
	}
	return cfg, nil
}

// Write marshals cfg to YAML at path, readable by the owner only.
func Write(path string, cfg *Config) error {
	data, err := goyaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil { //nolint:mnd // owner rw access
		return fmt.Errorf("failed to write config file to %s: %w", path, err)
	}
	return nil
}
