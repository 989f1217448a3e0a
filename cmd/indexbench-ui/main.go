package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bhavya700/CSE-412/internal/bench"
	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/client"
	"github.com/Bhavya700/CSE-412/internal/ui/config"
	"github.com/Bhavya700/CSE-412/internal/ui/server"
	"github.com/Bhavya700/CSE-412/internal/ui/session"
	"github.com/Bhavya700/CSE-412/internal/ui/shell"
	"github.com/Bhavya700/CSE-412/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "indexbench-ui",
		Short: "Index vs no index search comparison UI",
		Long:  `Web UI that runs the same player searches against an unindexed and a B-tree indexed database and shows the timings side by side`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Get().String()
	cmd.AddCommand(newBenchCommand())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, corsMiddleware, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load UI configuration: %w", err)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment, cfg.LogFile)
	slog.SetDefault(appLogger)

	appLogger.Info("Starting UI server",
		slog.String("version", version.Get().Version),
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	apiClient := client.NewClient(cfg.APIBaseURL, appLogger, cfg.ValidateResponses)

	secure := cfg.Environment == "prod" || cfg.Environment == "staging"
	sessions, err := session.NewStore(
		config.SessionCookieName,
		cfg.SessionSecret,
		secure,
		cfg.SessionTTL,
		func() *shell.Workspace { return shell.NewWorkspace(apiClient, appLogger) },
		appLogger,
	)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}
	defer sessions.Close()

	srv := server.New(cfg, corsMiddleware, apiClient, sessions, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("UI server shutdown complete")
	return nil
}

func newBenchCommand() *cobra.Command {
	var opts bench.Options

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a search repeatedly against both endpoint groups and compare the timings",
		Example: `  indexbench-ui bench --name Messi --runs 20
  indexbench-ui bench --nation Brazil --position LW --concurrency 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment, cfg.LogFile)
			apiClient := client.NewClient(cfg.APIBaseURL, appLogger, cfg.ValidateResponses)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := bench.Run(ctx, apiClient, opts, appLogger)
			if err != nil {
				return err
			}
			report.Write(cmd.OutOrStdout())
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "player name to search for")
	cmd.Flags().StringVar(&opts.Nation, "nation", "", "nation for the join search")
	cmd.Flags().StringVar(&opts.Position, "position", "", "position for the join search")
	cmd.Flags().IntVar(&opts.Runs, "runs", bench.DefaultRuns, "number of searches per endpoint")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", bench.DefaultConcurrency, "number of searches in flight at once")

	return cmd
}
