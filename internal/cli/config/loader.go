package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/leasedesk-go/internal/infra/confloader"
)

// DirName is the per-user directory under $HOME.
const DirName = ".leasedesk"

// FileName is the config file name inside DirName.
const FileName = "cli.yaml"

// DefaultConfigPath returns ~/.leasedesk/cli.yaml.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), DirName, FileName)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Load builds the configuration from defaults, ./.env, the YAML file at
// path (DefaultConfigPath when empty), LEASEDESK_* variables and flags,
// then validates it. A missing file is not an error.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default(homeDir())
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDotenv(".env"),
	)
	if err := loader.Load(cfg, defaultsMap(cfg), flags); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions, creating the directory.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Init writes the default configuration unless the file exists.
func Init(path string) (string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, err
	}
	return path, Save(Default(homeDir()), path)
}
