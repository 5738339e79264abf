package tournaments

import (
	"context"
	"fmt"
	"strings"

	"github.com/markusmobius/go-dateparser"
	"github.com/rs/zerolog"

	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/schedule"
)

// Discovered is a tournament listing as it arrives from a discovery
// provider: names and free-form date strings, nothing canonical yet.
type Discovered struct {
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
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "tournaments").Logger(),
	}
}

func (s *Service) List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error) {
	return s.repo.List(ctx, filters, pagination)
}

func (s *Service) GetByULID(ctx context.Context, ulid string) (*Tournament, error) {
	return s.repo.GetByULID(ctx, ulid)
}

// UpsertDiscovered canonicalizes a discovered listing and writes it, keyed
// by dedup hash. Returns the stored tournament and whether a new row was
// created. A listing without a name or readable start date is rejected; the
// discovery pipeline logs and moves on.
func (s *Service) UpsertDiscovered(ctx context.Context, item Discovered) (*Tournament, bool, error) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil, false, fmt.Errorf("discovered tournament has no name")
	}

	startDate, err := canonicalDay(item.StartDate)
	if err != nil {
		return nil, false, fmt.Errorf("tournament %q: parse start date %q: %w", name, item.StartDate, err)
	}
	endDate := ""
	if strings.TrimSpace(item.EndDate) != "" {
		endDate, err = canonicalDay(item.EndDate)
		if err != nil {
			s.logger.Warn().Str("tournament", name).Str("end_date", item.EndDate).
				Msg("unreadable end date, storing without one")
			endDate = ""
		}
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, false, fmt.Errorf("mint tournament ulid: %w", err)
	}

	hash := BuildDedupHash(DedupCandidate{
		Name:      name,
		VenueKey:  NormalizeVenueKey(item.Rink, item.City, item.State),
		StartDate: startDate,
	})

	stored, created, err := s.repo.Upsert(ctx, TournamentUpsertParams{
		ULID:      ulid,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Rink:      strings.TrimSpace(item.Rink),
		City:      strings.TrimSpace(item.City),
		State:     strings.TrimSpace(item.State),
		Country:   strings.TrimSpace(item.Country),
		AgeLevels: item.AgeLevels,
		URL:       strings.TrimSpace(item.URL),
		Source:    strings.TrimSpace(item.Source),
		DedupHash: hash,
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert tournament: %w", err)
	}
	return stored, created, nil
}

// canonicalDay turns a free-form date ("March 14, 2026", "2026-03-14",
// "next Saturday") into YYYY-MM-DD. Exact calendar dates skip the heavy
// parser.
func canonicalDay(value string) (string, error) {
	value = strings.TrimSpace(value)
	if day, ok := schedule.ParseDay(value); ok && len(value) == len(day) {
		return day, nil
	}
	parsed, err := dateparser.Parse(nil, value)
	if err != nil {
		return "", err
	}
	return schedule.Day(parsed.Time), nil
}
