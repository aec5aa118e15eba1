package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			kv := &output.KeyValue{Value: info}
			kv.Add("version", info.Version)
			kv.Add("commit", info.Commit)
			kv.Add("built", info.BuildTime)
			kv.Add("go", info.GoVersion)
			kv.Add("platform", info.Platform)
			return renderAs(c, c.App.Writer, output.FormatTable, kv)
		},
	}
}
