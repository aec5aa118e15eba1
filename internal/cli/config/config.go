package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// CLIConfig is the configuration of leasedesk-cli.
type CLIConfig struct {
	Server         string        `koanf:"server" yaml:"server"`
	Output         string        `koanf:"output" yaml:"output"` // table, json, yaml
	RequestTimeout time.Duration `koanf:"request_timeout" yaml:"request_timeout"`
	RateLimit      float64       `koanf:"rate_limit" yaml:"rate_limit"` // requests per second, 0 = off

	TLS     TLSConfig     `koanf:"tls" yaml:"tls"`
	Store   StoreConfig   `koanf:"store" yaml:"store"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
}

// TLSConfig configures HTTPS to the backend.
type TLSConfig struct {
	CAFile             string `koanf:"ca_file" yaml:"ca_file"`
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// StoreConfig selects where the session token is kept.
type StoreConfig struct {
	Backend  string `koanf:"backend" yaml:"backend"` // badger, redis, memory
	Dir      string `koanf:"dir" yaml:"dir"`
	RedisURL string `koanf:"redis_url" yaml:"redis_url"`
	Encrypt  bool   `koanf:"encrypt" yaml:"encrypt"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// MetricsConfig configures the textfile export. An empty path disables it.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// Default returns the default configuration rooted at home.
func Default(home string) *CLIConfig {
	return &CLIConfig{
		Server: "http://localhost:3333",
		Output: OutputTable,
		Store: StoreConfig{
			Backend: "badger",
			Dir:     filepath.Join(home, DirName, "store"),
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate checks enumerated values and ranges.
func (c *CLIConfig) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server) == "" {
		problems = append(problems, "server is required")
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		problems = append(problems, fmt.Sprintf("output %q is not one of table, json, yaml", c.Output))
	}
	if c.RequestTimeout < 0 {
		problems = append(problems, "request_timeout must not be negative")
	}
	if c.RateLimit < 0 {
		problems = append(problems, "rate_limit must not be negative")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of text, json", c.Log.Format))
	}
	switch c.Store.Backend {
	case "badger":
		if c.Store.Dir == "" {
			problems = append(problems, "store.dir is required for the badger backend")
		}
	case "redis":
		if c.Store.RedisURL == "" {
			problems = append(problems, "store.redis_url is required for the redis backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("store.backend %q is not one of badger, redis, memory", c.Store.Backend))
	}
	if len(problems) > 0 {
		return domain.ErrInvalidConfig.WithDetails(strings.Join(problems, "; "))
	}
	return nil
}

// defaultsMap flattens cfg into the dotted keys the loader expects.
func defaultsMap(cfg *CLIConfig) map[string]any {
	return map[string]any{
		"server":                   cfg.Server,
		"output":                   cfg.Output,
		"request_timeout":          cfg.RequestTimeout.String(),
		"rate_limit":               cfg.RateLimit,
		"tls.ca_file":              cfg.TLS.CAFile,
		"tls.insecure_skip_verify": cfg.TLS.InsecureSkipVerify,
		"store.backend":            cfg.Store.Backend,
		"store.dir":                cfg.Store.Dir,
		"store.redis_url":          cfg.Store.RedisURL,
		"store.encrypt":            cfg.Store.Encrypt,
		"log.level":                cfg.Log.Level,
		"log.format":               cfg.Log.Format,
		"metrics.textfile":         cfg.Metrics.Textfile,
	}
}

// fileForm is the YAML shape of CLIConfig with a readable duration.
type fileForm struct {
	Server         string        `yaml:"server"`
	Output         string        `yaml:"output"`
	RequestTimeout string        `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"`
	TLS            TLSConfig     `yaml:"tls"`
	Store          StoreConfig   `yaml:"store"`
	Log            LogConfig     `yaml:"log"`
	Metrics        MetricsConfig `yaml:"metrics"`
}

// MarshalYAML writes request_timeout as "5s" instead of nanoseconds.
func (c CLIConfig) MarshalYAML() (any, error) {
	return fileForm{
		Server:         c.Server,
		Output:         c.Output,
		RequestTimeout: c.RequestTimeout.String(),
		RateLimit:      c.RateLimit,
		TLS:            c.TLS,
		Store:          c.Store,
		Log:            c.Log,
		Metrics:        c.Metrics,
	}, nil
}
