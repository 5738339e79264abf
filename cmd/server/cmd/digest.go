package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rinkline/server/internal/email"
	"github.com/rinkline/server/internal/jobs"
	"github.com/rinkline/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var digestTeam string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Run the schedule risk digest once and exit",
	Long: `Evaluate schedule risks for each team and email the configured recipient
about hard conflicts and warnings. Runs the same code as the weekly
background job.

Examples:
  # Digest every team
  server digest

  # Digest a single team
  server digest --team 01HYX3KQW7ERTV9XNBM2P8QJZF`,
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

		emailService, err := email.NewService(cfg.Email, logger)
		if err != nil {
			return fmt.Errorf("email service init failed: %w", err)
		}

		riskCfg := schedule.Config{
			CloseStartThreshold: cfg.Schedule.CloseStartThreshold,
			AssumedGameDuration: cfg.Schedule.AssumedGameDuration,
			TravelTimeThreshold: cfg.Schedule.TravelTimeThreshold,
		}

		worker := jobs.RiskDigestWorker{
			Games:  games.NewService(repo.Games(), riskCfg),
			Email:  emailService,
			To:     cfg.Email.DigestTo,
			Logger: logger,
		}
		return worker.Run(ctx, digestTeam)
	},
}

func init() {
	digestCmd.Flags().StringVar(&digestTeam, "team", "", "digest only the given team ULID")
}
