// Package config loads the dayplan configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/dayplan/pkg/storage"
)

// Storage backend names accepted in the config file.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	// DataDir is where state lives. Empty means the OS default.
	DataDir string `yaml:"data_dir"`
	// Storage selects the persistence backend: file, sqlite, or memory.
	Storage string `yaml:"storage"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: storage.DefaultDataDir(),
		Storage: StorageFile,
	}
}

// Load reads config.yaml from the data directory resolved from (in order)
// the DAYPLAN_DIR environment variable, the explicit dir argument, or the
// OS default. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	if env := os.Getenv("DAYPLAN_DIR"); env != "" {
		dir = env
	}
	if dir == "" {
		dir = storage.DefaultDataDir()
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"), dir)
}

// LoadFrom loads configuration from a specific path, defaulting DataDir to
// dataDir when the file doesn't set one.
func LoadFrom(configPath, dataDir string) (*Config, error) {
	cfg := Default()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	case "":
		cfg.Storage = StorageFile
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return cfg, nil
}

// OpenBackend constructs the configured storage backend.
func (c *Config) OpenBackend() (storage.Backend, error) {
	switch c.Storage {
	case StorageSQLite:
		if err := os.MkdirAll(c.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return storage.OpenSQLite(filepath.Join(c.DataDir, "dayplan.db"))
	case StorageMemory:
		return storage.NewMemory(), nil
	default:
		return storage.NewFile(c.DataDir)
	}
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
