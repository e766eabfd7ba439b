package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	appanalytics "github.com/afyabot/afyabot/internal/application/analytics"
	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres/repositories"
)

const dateLayout = "2006-01-02"

// newAnalyticsCmd manages daily usage reports.
func newAnalyticsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Generate and inspect daily usage reports",
	}
	cmd.AddCommand(newAnalyticsGenerateCmd(opts), newAnalyticsShowCmd(opts))
	return cmd
}

func withAnalyticsService(opts *rootOptions, cmd *cobra.Command,
	fn func(svc *appanalytics.Service) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := opts.newLogger(cfg)
	if err != nil {
		return err
	}

	pg, err := postgres.NewConnection(cmd.Context(), cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	return fn(appanalytics.NewService(repositories.NewAnalyticsRepository(pg.Pool(), log), log))
}

func newAnalyticsGenerateCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute and store the report for a day (default: yesterday)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalyticsService(opts, cmd, func(svc *appanalytics.Service) error {
				var report *domain.DailyReport
				var err error
				if date == "" {
					report, err = svc.GenerateYesterday(cmd.Context())
				} else {
					var day time.Time
					day, err = time.Parse(dateLayout, date)
					if err != nil {
						return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
					}
					report, err = svc.GenerateDaily(cmd.Context(), day)
				}
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to aggregate (YYYY-MM-DD)")
	return cmd
}

func newAnalyticsShowCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored report for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(dateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
			}
			return withAnalyticsService(opts, cmd, func(svc *appanalytics.Service) error {
				report, err := svc.GetDaily(cmd.Context(), day)
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func printReport(cmd *cobra.Command, r *domain.DailyReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Report for %s\n", r.Date.Format(dateLayout))
	fmt.Fprintf(out, "  Users:       %d total, %d new, %d returning\n",
		r.TotalUsers, r.NewUsers, r.ReturningUsers)
	fmt.Fprintf(out, "  Messages:    %d\n", r.TotalMessages)
	fmt.Fprintf(out, "  Emergencies: %d (%d shared a location)\n",
		r.EmergencyDetections, r.LocationShares)
	fmt.Fprintf(out, "  Avg rating:  %.2f\n", r.AverageRating)
	if len(r.TopConditions) > 0 {
		fmt.Fprintln(out, "  Top conditions:")
		for name, count := range r.TopConditions {
			fmt.Fprintf(out, "    %-20s %d\n", name, count)
		}
	}
}
