// Package cli defines the afyactl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afyabot/afyabot/internal/config"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the afyactl root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "afyactl",
		Short: "AfyaBot — symptom triage and first-aid guidance service",
		Long: "AfyaBot processes free-text symptom descriptions through an emergency\n" +
			"keyword check, lexical symptom extraction, and condition matching, and\n" +
			"returns first-aid guidance with nearby-facility lookup.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ./configs/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newTriageCmd(opts),
		newAnalyticsCmd(opts),
	)

	return cmd
}

// loadConfig resolves the configuration: an explicit --config path, then the
// default search locations, then environment variables alone.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}

	for _, p := range []string{"configs/config.yaml", "afyabot.yaml", "/etc/afyabot/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return config.Load(p)
		}
	}

	return config.LoadFromEnv()
}

// newLogger builds the process logger, honouring the --log-level override.
func (o *rootOptions) newLogger(cfg *config.Config) (logging.Logger, error) {
	logCfg := cfg.Log
	if o.logLevel != "" {
		logCfg.Level = o.logLevel
	}
	return logging.NewLogger(logCfg)
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	return nil
}
