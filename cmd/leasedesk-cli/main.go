package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yndnr/leasedesk-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		// Reported errors were already shown as a notification.
		if !command.IsReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
