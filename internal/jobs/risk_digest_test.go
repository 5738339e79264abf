package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rinkline/server/internal/config"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rinkline/server/internal/email"
	"github.com/rs/zerolog"
)

type fakeGamesRepo struct {
	byTeam  map[string][]games.Game
	listErr error
}

func (r *fakeGamesRepo) List(_ context.Context, _ games.Filters, _ games.Pagination) (games.ListResult, error) {
	return games.ListResult{}, nil
}

func (r *fakeGamesRepo) ListByTeam(_ context.Context, teamULID string) ([]games.Game, error) {
	return r.byTeam[teamULID], nil
}

func (r *fakeGamesRepo) ListTeamULIDs(_ context.Context) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	teams := make([]string, 0, len(r.byTeam))
	for team := range r.byTeam {
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *fakeGamesRepo) GetByULID(_ context.Context, _ string) (*games.Game, error) {
	return nil, games.ErrNotFound
}

func (r *fakeGamesRepo) Create(_ context.Context, _ games.GameCreateParams) (*games.Game, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeGamesRepo) Update(_ context.Context, _ string, _ games.GameUpdateParams) (*games.Game, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeGamesRepo) Delete(_ context.Context, _ string) error {
	return errors.New("not implemented")
}

func newDigestWorker(t *testing.T, repo *fakeGamesRepo, to string) RiskDigestWorker {
	t.Helper()
	emailService, err := email.NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())
	if err != nil {
		t.Fatalf("email.NewService() error: %v", err)
	}
	return RiskDigestWorker{
		Games:  games.NewService(repo, schedule.DefaultConfig()),
		Email:  emailService,
		To:     to,
		Logger: zerolog.Nop(),
	}
}

func TestDigestWorker_RunsForAllTeams(t *testing.T) {
	repo := &fakeGamesRepo{byTeam: map[string][]games.Game{
		"01J0KXMQZ8RPXJPN8J9Q6TK0WP": {
			{ULID: "01J0KXMQZ8RPXJPN8J9Q6TK0W1", Type: "game", Date: "2099-09-12", Time: "18:00"},
			{ULID: "01J0KXMQZ8RPXJPN8J9Q6TK0W2", Type: "game", Date: "2099-09-12", Time: "18:30"},
		},
		"01J0KXMQZ8RPXJPN8J9Q6TK0WQ": {
			{ULID: "01J0KXMQZ8RPXJPN8J9Q6TK0W3", Type: "game", Date: "2099-09-14", Time: "10:00"},
		},
	}}

	worker := newDigestWorker(t, repo, "coach@example.com")
	if err := worker.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestDigestWorker_SingleTeam(t *testing.T) {
	repo := &fakeGamesRepo{byTeam: map[string][]games.Game{
		"01J0KXMQZ8RPXJPN8J9Q6TK0WP": {
			{ULID: "01J0KXMQZ8RPXJPN8J9Q6TK0W1", Type: "game", Date: "2099-09-12", Time: "18:00"},
		},
	}}

	worker := newDigestWorker(t, repo, "coach@example.com")
	if err := worker.Run(context.Background(), "01J0KXMQZ8RPXJPN8J9Q6TK0WP"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestDigestWorker_NoRecipientSkips(t *testing.T) {
	repo := &fakeGamesRepo{listErr: errors.New("should not be called")}

	worker := newDigestWorker(t, repo, "")
	if err := worker.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run() should skip without recipient, got error: %v", err)
	}
}

func TestDigestWorker_ListTeamsError(t *testing.T) {
	repo := &fakeGamesRepo{listErr: errors.New("db down")}

	worker := newDigestWorker(t, repo, "coach@example.com")
	if err := worker.Run(context.Background(), ""); err == nil {
		t.Fatal("expected error when team listing fails")
	}
}

func TestDigestWorker_NotConfigured(t *testing.T) {
	worker := RiskDigestWorker{Logger: zerolog.Nop()}

	if err := worker.Run(context.Background(), ""); err == nil {
		t.Fatal("expected error for unconfigured worker")
	}
}
