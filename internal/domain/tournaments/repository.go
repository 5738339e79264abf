package tournaments

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("tournament not found")

// Tournament is a discovered or manually entered tournament listing.
type Tournament struct {
	ID        string
	ULID      string
	Name      string
	StartDate string
	EndDate   string
	Rink      string
	City      string
	State     string
	Country   string
	AgeLevels []string
	URL       string
	Source    string
	DedupHash string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TournamentUpsertParams struct {
	ULID      string
	Name      string
	StartDate string
	EndDate   string
	Rink      string
	City      string
	State     string
	Country   string
	AgeLevels []string
	URL       string
	Source    string
	DedupHash string
}

type Filters struct {
	State    string
	FromDate string
	ToDate   string
	Source   string
}

type Pagination struct {
	Limit int
	After string
}

type ListResult struct {
	Tournaments []Tournament
	NextCursor  string
}

type Repository interface {
	List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error)
	GetByULID(ctx context.Context, ulid string) (*Tournament, error)
	Upsert(ctx context.Context, params TournamentUpsertParams) (*Tournament, bool, error)
}
