package command

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/config"
	"github.com/yndnr/leasedesk-go/internal/cli/output"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:  "path",
				Usage: "Print the configuration file path",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, configPath(c))
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Action: func(c *cli.Context) error {
					path, err := config.Init(configPath(c))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
					return nil
				},
			},
		},
	}
}

func configPath(c *cli.Context) string {
	if rt, err := runtimeFrom(c); err == nil && rt.ConfigPath != "" {
		return rt.ConfigPath
	}
	if p := c.String("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func configShow(c *cli.Context) error {
	var cfg *config.CLIConfig
	if rt, err := runtimeFrom(c); err == nil {
		cfg = rt.Config
	} else {
		if cfg, err = config.Load(c.String("config"), flagOverrides(c)); err != nil {
			return err
		}
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	return renderAs(c, c.App.Writer, format, configView(cfg))
}

func configView(cfg *config.CLIConfig) *output.KeyValue {
	kv := &output.KeyValue{}
	kv.Add("server", cfg.Server)
	kv.Add("output", cfg.Output)
	kv.Add("request_timeout", cfg.RequestTimeout.String())
	kv.Add("rate_limit", strconv.FormatFloat(cfg.RateLimit, 'f', -1, 64))
	kv.Add("tls.ca_file", cfg.TLS.CAFile)
	kv.Add("tls.insecure_skip_verify", strconv.FormatBool(cfg.TLS.InsecureSkipVerify))
	kv.Add("store.backend", cfg.Store.Backend)
	kv.Add("store.dir", cfg.Store.Dir)
	kv.Add("store.redis_url", redactURL(cfg.Store.RedisURL))
	kv.Add("store.encrypt", strconv.FormatBool(cfg.Store.Encrypt))
	kv.Add("log.level", cfg.Log.Level)
	kv.Add("log.format", cfg.Log.Format)
	kv.Add("metrics.textfile", cfg.Metrics.Textfile)
	return kv
}

// redactURL hides the password of a redis:// URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
