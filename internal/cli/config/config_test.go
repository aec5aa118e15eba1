package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default("/home/ana")

	if cfg.Server != "http://localhost:3333" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Output != OutputTable {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Store.Dir != filepath.Join("/home/ana", ".leasedesk", "store") {
		t.Errorf("Store.Dir = %q", cfg.Store.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".leasedesk", "cli.yaml")) {
		t.Errorf("path = %q", path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CLIConfig)
	}{
		{"empty server", func(c *CLIConfig) { c.Server = "" }},
		{"bad output", func(c *CLIConfig) { c.Output = "xml" }},
		{"negative timeout", func(c *CLIConfig) { c.RequestTimeout = -time.Second }},
		{"negative rate", func(c *CLIConfig) { c.RateLimit = -1 }},
		{"redis without url", func(c *CLIConfig) { c.Store.Backend = "redis" }},
		{"unknown backend", func(c *CLIConfig) { c.Store.Backend = "sqlite" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want LD-CONF-4000", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "http://localhost:3333" {
		t.Errorf("Server = %q", cfg.Server)
	}
}

func TestLoad_FileEnvFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := "server: https://rentals.example.com\nrequest_timeout: 10s\nstore:\n  backend: memory\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEASEDESK_OUTPUT", "json")
	t.Setenv("LEASEDESK_TLS_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load(path, map[string]any{"output": "yaml"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "https://rentals.example.com" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q", cfg.Store.Backend)
	}
	if cfg.Output != "yaml" {
		t.Errorf("Output = %q, flags should beat env", cfg.Output)
	}
	if !cfg.TLS.InsecureSkipVerify {
		t.Error("InsecureSkipVerify should come from env")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("output: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cli.yaml")
	cfg := Default(t.TempDir())
	cfg.RequestTimeout = 30 * time.Second
	cfg.Store.Backend = "memory"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "request_timeout: 30s") {
		t.Errorf("file = %s", data)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.RequestTimeout != 30*time.Second || loaded.Store.Backend != "memory" {
		t.Errorf("reloaded = %+v", loaded)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if _, err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := Init(path); err == nil {
		t.Error("second Init should refuse to overwrite")
	}
}
