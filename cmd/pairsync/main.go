// Package main provides the entry point for the pairsync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/pairsync/pairsync/cmd/pairsync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel in-flight jobs on SIGINT/SIGTERM
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	app.ExitOnError(application.Execute(ctx, os.Args[1:]))
}
