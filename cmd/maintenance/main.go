package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shenikar/coastal_hazard_system/internal/app"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/pkg/logger"
	"github.com/shenikar/coastal_hazard_system/pkg/postgres"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var migrationsPath string

	root := &cobra.Command{
		Use:          "maintenance",
		Short:        "Maintenance tasks for the coastal hazard store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&migrationsPath, "migrations", postgres.DefaultMigrationsPath, "migrations source URL")

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg, log, err := setup()
				if err != nil {
					return err
				}
				return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath, log)
			},
		},
		&cobra.Command{
			Use:   "import <dir>",
			Short: "Ingest every *.json file of posts from a directory",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCore(cmd.Context(), func(core *app.Core, log *logrus.Logger) error {
					summary, err := importDir(cmd.Context(), args[0], core.PostService, log)
					fmt.Fprintf(cmd.OutOrStdout(), "files=%d skipped=%d posts=%d inserted=%d\n",
						summary.Files, summary.Skipped, summary.Posts, summary.Inserted)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "recompute-urgency",
			Short: "Reclassify urgency for every stored post",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withCore(cmd.Context(), func(core *app.Core, _ *logrus.Logger) error {
					updated, err := core.PostService.RecomputeUrgency(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "updated=%d\n", updated)
					return nil
				})
			},
		},
	)
	return root
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.NewWithOutput(cfg.LogLevel, os.Stderr, false), nil
}

func withCore(ctx context.Context, fn func(*app.Core, *logrus.Logger) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	core, err := app.NewCore(ctx, cfg, log, metrics.NewMetrics())
	if err != nil {
		return err
	}
	defer core.Close()
	return fn(core, log)
}
