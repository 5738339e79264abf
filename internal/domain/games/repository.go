package games

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("game not found")

// Game is a scheduled game or tournament entry as stored. Date and time are
// kept in the form they were entered; canonicalization for risk evaluation
// happens in the schedule package.
type Game struct {
	ID             string
	ULID           string
	TeamID         string
	Type           string
	Date           string
	Time           string
	EndTime        string
	OpponentID     string
	OpponentName   string
	OpponentLabel  string
	TournamentName string
	Category       string
	Rink           string
	City           string
	State          string
	Country        string
	Status         string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type GameCreateParams struct {
	ULID           string
	TeamID         string
	Type           string
	Date           string
	Time           string
	EndTime        string
	OpponentID     string
	OpponentName   string
	OpponentLabel  string
	TournamentName string
	Category       string
	Rink           string
	City           string
	State          string
	Country        string
	Status         string
	Notes          string
}

type GameUpdateParams struct {
	Date           string
	Time           string
	EndTime        string
	OpponentID     string
	OpponentName   string
	OpponentLabel  string
	TournamentName string
	Category       string
	Rink           string
	City           string
	State          string
	Country        string
	Status         string
	Notes          string
}

type Filters struct {
	TeamULID string
	FromDate string
	ToDate   string
	Status   string
	Type     string
}

type Pagination struct {
	Limit int
	After string
}

type ListResult struct {
	Games      []Game
	NextCursor string
}

type Repository interface {
	List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error)
	ListByTeam(ctx context.Context, teamULID string) ([]Game, error)
	ListTeamULIDs(ctx context.Context) ([]string, error)
	GetByULID(ctx context.Context, ulid string) (*Game, error)
	Create(ctx context.Context, params GameCreateParams) (*Game, error)
	Update(ctx context.Context, ulid string, params GameUpdateParams) (*Game, error)
	Delete(ctx context.Context, ulid string) error
}
