package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/riverqueue/river"
	"github.com/rinkline/server/internal/domain/tournaments"
	"github.com/rinkline/server/internal/metrics"
	"github.com/rs/zerolog"
)

// TournamentDiscoveryArgs runs discovery for one named source, or every
// enabled source when Source is empty.
type TournamentDiscoveryArgs struct {
	Source string `json:"source,omitempty"`
}

func (TournamentDiscoveryArgs) Kind() string { return JobKindTournamentDiscovery }

// TournamentProvider fetches raw tournament listings from a source.
type TournamentProvider interface {
	Fetch(ctx context.Context, source Source) ([]tournaments.Discovered, error)
}

type TournamentDiscoveryWorker struct {
	river.WorkerDefaults[TournamentDiscoveryArgs]
	Service     *tournaments.Service
	Provider    TournamentProvider
	SourcesPath string
	Logger      zerolog.Logger
}

func (TournamentDiscoveryWorker) Kind() string { return JobKindTournamentDiscovery }

func (w TournamentDiscoveryWorker) Work(ctx context.Context, job *river.Job[TournamentDiscoveryArgs]) error {
	return w.Run(ctx, job.Args.Source)
}

// Run executes discovery outside the queue; the discover command uses it
// directly.
func (w TournamentDiscoveryWorker) Run(ctx context.Context, sourceName string) error {
	if w.Service == nil || w.Provider == nil {
		return fmt.Errorf("discovery worker not configured")
	}

	sources, err := LoadSources(w.SourcesPath)
	if err != nil {
		return err
	}
	if sourceName != "" {
		sources = filterSources(sources, sourceName)
		if len(sources) == 0 {
			return fmt.Errorf("unknown discovery source %q", sourceName)
		}
	}

	var failed int
	for _, source := range sources {
		if err := w.runSource(ctx, source); err != nil {
			w.Logger.Error().Err(err).Str("source", source.Name).Msg("discovery source failed")
			failed++
		}
	}
	if failed == len(sources) && len(sources) > 0 {
		return fmt.Errorf("all %d discovery sources failed", failed)
	}
	return nil
}

func (w TournamentDiscoveryWorker) runSource(ctx context.Context, source Source) error {
	items, err := w.Provider.Fetch(ctx, source)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", source.Name, err)
	}

	var created, updated, skipped int
	for _, item := range items {
		item.Source = source.Name
		if item.State == "" {
			item.State = source.State
		}

		_, isNew, err := w.Service.UpsertDiscovered(ctx, item)
		if err != nil {
			w.Logger.Debug().Err(err).Str("source", source.Name).Str("name", item.Name).Msg("skipping listing")
			metrics.TournamentsDiscovered.WithLabelValues(source.Name, "skipped").Inc()
			skipped++
			continue
		}
		if isNew {
			metrics.TournamentsDiscovered.WithLabelValues(source.Name, "created").Inc()
			created++
		} else {
			metrics.TournamentsDiscovered.WithLabelValues(source.Name, "updated").Inc()
			updated++
		}
	}

	w.Logger.Info().
		Str("source", source.Name).
		Int("created", created).
		Int("updated", updated).
		Int("skipped", skipped).
		Msg("discovery source complete")
	return nil
}

func filterSources(sources []Source, name string) []Source {
	var out []Source
	for _, source := range sources {
		if source.Name == name {
			out = append(out, source)
		}
	}
	return out
}

// FeedProvider pulls listings from JSON feeds over HTTP. Each feed returns an
// array of listing objects; unknown fields are ignored.
type FeedProvider struct {
	Client *http.Client
}

func NewFeedProvider() *FeedProvider {
	return &FeedProvider{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type feedListing struct {
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Rink      string   `json:"rink"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	AgeLevels []string `json:"ageLevels"`
	URL       string   `json:"url"`
}

func (p *FeedProvider) Fetch(ctx context.Context, source Source) ([]tournaments.Discovered, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var listings []feedListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	items := make([]tournaments.Discovered, 0, len(listings))
	for _, listing := range listings {
		items = append(items, tournaments.Discovered{
			Name:      listing.Name,
			StartDate: listing.StartDate,
			EndDate:   listing.EndDate,
			Rink:      listing.Rink,
			City:      listing.City,
			State:     listing.State,
			Country:   listing.Country,
			AgeLevels: listing.AgeLevels,
			URL:       listing.URL,
		})
	}
	return items, nil
}
