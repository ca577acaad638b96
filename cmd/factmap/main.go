// Package main provides the entry point for the factmap CLI tool.
package main

import (
	"os"

	"github.com/agentstation/factmap/cmd/factmap/app"
	"github.com/agentstation/factmap/cmd/factmap/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := app.Context()
	defer cancel()

	if err := cmd.Execute(ctx, version, commit, date); err != nil {
		os.Exit(1)
	}
}
