package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appchat "github.com/afyabot/afyabot/internal/application/chat"
	appfeedback "github.com/afyabot/afyabot/internal/application/feedback"
	apphospital "github.com/afyabot/afyabot/internal/application/hospital"
	"github.com/afyabot/afyabot/internal/config"
	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/domain/triage"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres"
	"github.com/afyabot/afyabot/internal/infrastructure/database/postgres/repositories"
	"github.com/afyabot/afyabot/internal/infrastructure/database/redis"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/prometheus"
	"github.com/afyabot/afyabot/internal/infrastructure/overpass"
	httpserver "github.com/afyabot/afyabot/internal/interfaces/http"
	"github.com/afyabot/afyabot/internal/interfaces/http/handlers"
)

// newServeCmd runs the HTTP API server.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the AfyaBot API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := opts.newLogger(cfg)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log, skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false,
		"do not run database migrations on startup")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, log logging.Logger, skipMigrations bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting afyabot",
		logging.String("version", Version),
		logging.Int("port", cfg.Server.Port))

	pg, err := postgres.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	if !skipMigrations && cfg.Database.MigrationPath != "" {
		if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	rds, err := redis.NewClient(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = rds.Close() }()

	cacheOpts := []redis.CacheOption{redis.WithDefaultTTL(cfg.Triage.ReferenceCacheTTL)}
	if cfg.Redis.KeyPrefix != "" {
		cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.KeyPrefix))
	}
	cache := redis.NewCache(rds, log, cacheOpts...)

	lexRepo := lexicon.NewCachedRepository(
		repositories.NewLexiconRepository(pg.Pool(), log), cache, cfg.Triage.ReferenceCacheTTL)

	matcherOpts := []triage.MatcherOption{triage.WithTopMatches(cfg.Triage.TopMatches)}
	if cfg.Triage.ResultCacheTTL > 0 {
		matcherOpts = append(matcherOpts, triage.WithResultCache(cache, cfg.Triage.ResultCacheTTL))
	}
	pipeline := triage.NewPipeline(
		triage.NewExtractor(lexRepo, log),
		triage.NewDetector(lexRepo, log),
		triage.NewMatcher(lexRepo, log, matcherOpts...),
		triage.NewFormatter(cfg.Triage.LowConfidenceThreshold),
		log,
	)

	metrics := prometheus.NewMetrics()
	chatRepo := repositories.NewChatRepository(pg.Pool(), log)
	limiter := redis.NewRateLimiter(rds, log, cfg.Chat.RateLimitWindow)

	chatSvc := appchat.NewService(chatRepo, pipeline, limiter, metrics, log, cfg.Chat.MaxMessageLength)
	hospitalSvc := apphospital.NewService(
		overpass.NewClient(cfg.Overpass, log), chatRepo, metrics, log, cfg.Overpass.ResultLimit)
	feedbackSvc := appfeedback.NewService(chatRepo, metrics, log)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ChatHandler:     handlers.NewChatHandler(chatSvc, log),
		HospitalHandler: handlers.NewHospitalHandler(hospitalSvc, log),
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackSvc, log),
		HealthHandler: handlers.NewHealthHandler(Version,
			handlers.NamedCheck("postgres", pg.HealthCheck),
			handlers.NamedCheck("redis", rds.HealthCheck),
		),
		Logger:  log,
		Metrics: metrics,
	})

	server := httpserver.NewServer(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return server.Stop(context.Background())
}
