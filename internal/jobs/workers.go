package jobs

import (
	"fmt"

	"github.com/riverqueue/river"
	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/tournaments"
	"github.com/rinkline/server/internal/email"
	"github.com/rs/zerolog"
)

// WorkerDeps carries everything the background workers need.
type WorkerDeps struct {
	Config      config.Config
	Games       *games.Service
	Tournaments *tournaments.Service
	Email       *email.Service
	Provider    TournamentProvider
	Logger      zerolog.Logger
}

// NewWorkers registers all workers with River.
func NewWorkers(deps WorkerDeps) (*river.Workers, error) {
	if deps.Games == nil || deps.Tournaments == nil || deps.Email == nil {
		return nil, fmt.Errorf("worker dependencies incomplete")
	}
	if deps.Provider == nil {
		deps.Provider = NewFeedProvider()
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, TournamentDiscoveryWorker{
		Service:     deps.Tournaments,
		Provider:    deps.Provider,
		SourcesPath: deps.Config.Jobs.DiscoverySourcesYML,
		Logger:      deps.Logger,
	})
	river.AddWorker(workers, RiskDigestWorker{
		Games:  deps.Games,
		Email:  deps.Email,
		To:     deps.Config.Email.DigestTo,
		Logger: deps.Logger,
	})
	return workers, nil
}
