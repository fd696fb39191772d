// Package main is the entry point for the frappe-mounts CLI.
//
// The binary is meant to run as a devcontainer initializeCommand: it reads
// frappe-apps.json and writes docker-compose.mounts.yml before Compose
// starts. All commands live in internal/cli.
package main

import (
	"github.com/shinji-kodama/frappe-mounts/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
