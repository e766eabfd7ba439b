package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afyabot/afyabot/internal/domain/triage"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres/repositories"
)

// newTriageCmd runs one message through the pipeline locally, without the
// HTTP server, Redis, or any audit persistence. Useful for inspecting how a
// phrasing triages.
func newTriageCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "triage <message>",
		Short: "Run one message through the triage pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := opts.newLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pg, err := postgres.NewConnection(ctx, cfg.Database, log)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pg.Close()

			lexRepo := repositories.NewLexiconRepository(pg.Pool(), log)
			pipeline := triage.NewPipeline(
				triage.NewExtractor(lexRepo, log),
				triage.NewDetector(lexRepo, log),
				triage.NewMatcher(lexRepo, log, triage.WithTopMatches(cfg.Triage.TopMatches)),
				triage.NewFormatter(cfg.Triage.LowConfidenceThreshold),
				log,
			)

			result := pipeline.Process(ctx, strings.Join(args, " "))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Outcome: %s\n", result.Outcome)
			if len(result.Symptoms) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Symptoms: %s\n", strings.Join(result.Symptoms, ", "))
			}
			for _, m := range result.Matches {
				fmt.Fprintf(cmd.OutOrStdout(), "Match: %s (%.2f)\n", m.ConditionName, m.Confidence)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
