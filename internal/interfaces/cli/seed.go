package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afyabot/afyabot/internal/application/seed"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres/repositories"
)

// newSeedCmd loads the bundled Kenyan reference dataset into the database,
// replacing any previous reference data.
func newSeedCmd(opts *rootOptions) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the Kenyan symptom, keyword, and condition dataset",
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

			if !skipMigrations && cfg.Database.MigrationPath != "" {
				if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
			}

			svc := seed.NewService(repositories.NewLexiconRepository(pg.Pool(), log), log)
			if err := svc.Run(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Reference data seeded.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false,
		"do not run database migrations before seeding")
	return cmd
}
