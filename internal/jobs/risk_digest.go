package jobs

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rinkline/server/internal/email"
	"github.com/rinkline/server/internal/metrics"
	"github.com/rs/zerolog"
)

// RiskDigestArgs runs the digest for one team, or all teams when TeamID is
// empty.
type RiskDigestArgs struct {
	TeamID string `json:"team_id,omitempty"`
}

func (RiskDigestArgs) Kind() string { return JobKindRiskDigest }

// RiskDigestWorker evaluates each team's schedule and emails the configured
// recipient when hard conflicts or warnings turn up. Travel risks carry
// warning severity, so a tight same-day venue change is enough to send.
type RiskDigestWorker struct {
	river.WorkerDefaults[RiskDigestArgs]
	Games  *games.Service
	Email  *email.Service
	To     string
	Logger zerolog.Logger
}

func (RiskDigestWorker) Kind() string { return JobKindRiskDigest }

func (w RiskDigestWorker) Work(ctx context.Context, job *river.Job[RiskDigestArgs]) error {
	return w.Run(ctx, job.Args.TeamID)
}

// Run executes the digest outside the queue; the digest command uses it
// directly.
func (w RiskDigestWorker) Run(ctx context.Context, teamID string) error {
	if w.Games == nil || w.Email == nil {
		return fmt.Errorf("digest worker not configured")
	}
	if w.To == "" {
		w.Logger.Info().Msg("no digest recipient configured, skipping")
		metrics.DigestsSent.WithLabelValues("skipped").Inc()
		return nil
	}

	teams := []string{teamID}
	if teamID == "" {
		var err error
		teams, err = w.Games.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
	}

	var failed int
	for _, teamULID := range teams {
		if err := w.digestTeam(ctx, teamULID); err != nil {
			w.Logger.Error().Err(err).Str("team", teamULID).Msg("digest failed")
			metrics.DigestsSent.WithLabelValues("error").Inc()
			failed++
		}
	}
	if failed == len(teams) && len(teams) > 0 {
		return fmt.Errorf("digest failed for all %d teams", failed)
	}
	return nil
}

func (w RiskDigestWorker) digestTeam(ctx context.Context, teamULID string) error {
	evaluation, err := w.Games.EvaluateRisks(ctx, teamULID)
	if err != nil {
		return err
	}

	actionable := make([]schedule.Risk, 0, len(evaluation.Risks))
	for _, risk := range evaluation.Risks {
		if risk.Severity == schedule.SeverityError || risk.Severity == schedule.SeverityWarning {
			actionable = append(actionable, risk)
		}
	}
	if len(actionable) == 0 {
		metrics.DigestsSent.WithLabelValues("skipped").Inc()
		return nil
	}

	if err := w.Email.SendRiskDigest(ctx, w.To, teamULID, actionable); err != nil {
		return err
	}
	metrics.DigestsSent.WithLabelValues("sent").Inc()
	return nil
}
