// afyactl is the AfyaBot command-line entry point: API server, dataset
// seeding, one-shot triage, and analytics.
package main

import (
	"fmt"
	"os"

	"github.com/afyabot/afyabot/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
