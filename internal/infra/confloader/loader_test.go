package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server         string        `koanf:"server"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	Store          struct {
		Backend  string `koanf:"backend"`
		RedisURL string `koanf:"redis_url"`
		Encrypt  bool   `koanf:"encrypt"`
	} `koanf:"store"`
}

func defaults() map[string]any {
	return map[string]any{
		"server":          "http://localhost:3333",
		"request_timeout": "0s",
		"store.backend":   "badger",
		"store.redis_url": "",
		"store.encrypt":   false,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/a.yaml"), WithDotenv("/b.env"))
	if l.envPrefix != "TEST_" || l.filePath != "/a.yaml" || l.dotenvPath != "/b.env" {
		t.Errorf("options not applied: %+v", l)
	}
}

func TestLoader_Defaults(t *testing.T) {
	var cfg testConfig
	l := NewLoader(WithEnvPrefix("LDTEST_DEFAULTS_"), WithConfigFile("/nonexistent/cli.yaml"))
	if err := l.Load(&cfg, defaults(), nil); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "http://localhost:3333" || cfg.Store.Backend != "badger" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false")
	}
}

func TestLoader_Priority(t *testing.T) {
	dotenv := writeFile(t, ".env", "LDTEST_SERVER=http://dotenv\nLDTEST_STORE_BACKEND=memory\nOTHER=ignored\n")
	yamlPath := writeFile(t, "cli.yaml", "server: http://file\nrequest_timeout: 5s\n")
	t.Setenv("LDTEST_SERVER", "http://env")
	t.Setenv("LDTEST_STORE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LDTEST_STORE_ENCRYPT", "true")

	var cfg testConfig
	l := NewLoader(WithEnvPrefix("LDTEST_"), WithConfigFile(yamlPath), WithDotenv(dotenv))
	if err := l.Load(&cfg, defaults(), map[string]any{"store.backend": "redis"}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server != "http://env" {
		t.Errorf("Server = %q, env should beat file and .env", cfg.Server)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("Backend = %q, flags should win", cfg.Store.Backend)
	}
	if cfg.Store.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q, underscore key should resolve", cfg.Store.RedisURL)
	}
	if !cfg.Store.Encrypt {
		t.Error("Encrypt should be true from env")
	}
	if l.GetString("other") != "" {
		t.Error("unprefixed .env entries must be ignored")
	}
}

func TestLoader_DotenvBelowFile(t *testing.T) {
	dotenv := writeFile(t, ".env", "LDTEST_DOT_SERVER=http://dotenv\n")
	yamlPath := writeFile(t, "cli.yaml", "server: http://file\n")

	var cfg testConfig
	l := NewLoader(WithEnvPrefix("LDTEST_DOT_"), WithConfigFile(yamlPath), WithDotenv(dotenv))
	if err := l.Load(&cfg, defaults(), nil); err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "http://file" {
		t.Errorf("Server = %q, file should beat .env", cfg.Server)
	}
}

func TestLoader_LoadFile_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: [unclosed\n")
	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg, nil, nil); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoader_EnvUnknownKey(t *testing.T) {
	t.Setenv("LDTEST_UNK_LOG_LEVEL", "debug")
	l := NewLoader(WithEnvPrefix("LDTEST_UNK_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatal(err)
	}
	if l.GetString("log.level") != "debug" {
		t.Errorf("log.level = %q", l.GetString("log.level"))
	}
}

func TestUnflatten(t *testing.T) {
	got := unflatten(map[string]any{"a.b.c": 1, "a.d": 2, "e": 3})
	a := got["a"].(map[string]any)
	if a["b"].(map[string]any)["c"] != 1 || a["d"] != 2 || got["e"] != 3 {
		t.Errorf("unflatten = %v", got)
	}
}
