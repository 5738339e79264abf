package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/tournaments"
	"github.com/rinkline/server/internal/jobs"
	"github.com/rinkline/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var discoverSource string

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run tournament discovery once and exit",
	Long: `Fetch tournament listings from the configured discovery feeds and upsert
them into the database. Runs the same code as the scheduled background job.

Examples:
  # Run every enabled source
  server discover

  # Run a single source by name
  server discover --source mass-hockey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		logger := config.NewLogger(cfg.Logging)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		repo, err := postgres.NewRepository(pool)
		if err != nil {
			return err
		}

		worker := jobs.TournamentDiscoveryWorker{
			Service:     tournaments.NewService(repo.Tournaments(), logger),
			Provider:    jobs.NewFeedProvider(),
			SourcesPath: cfg.Jobs.DiscoverySourcesYML,
			Logger:      logger,
		}
		return worker.Run(ctx, discoverSource)
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverSource, "source", "", "run only the named source")
}
