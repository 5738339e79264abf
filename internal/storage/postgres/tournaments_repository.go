package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rinkline/server/internal/domain/tournaments"
)

var _ tournaments.Repository = (*TournamentRepository)(nil)

const tournamentColumns = `t.id, t.ulid, t.name, t.start_date, t.end_date,
       t.rink, t.city, t.state, t.country, t.age_levels, t.url, t.source,
       t.dedup_hash, t.created_at, t.updated_at`

func (r *TournamentRepository) List(ctx context.Context, filters tournaments.Filters, paginationArgs tournaments.Pagination) (tournaments.ListResult, error) {
	queryer := r.queryer()

	limit := paginationArgs.Limit
	if limit <= 0 {
		limit = 50
	}
	limitPlusOne := limit + 1

	rows, err := queryer.Query(ctx, `
SELECT `+tournamentColumns+`
  FROM tournaments t
 WHERE ($1 = '' OR t.state = $1)
   AND ($2 = '' OR t.start_date >= $2)
   AND ($3 = '' OR t.start_date <= $3)
   AND ($4 = '' OR t.source = $4)
   AND ($5 = '' OR (t.start_date, t.ulid) > (SELECT c.start_date, c.ulid FROM tournaments c WHERE c.ulid = $5))
 ORDER BY t.start_date ASC, t.ulid ASC
 LIMIT $6
`,
		filters.State,
		filters.FromDate,
		filters.ToDate,
		filters.Source,
		paginationArgs.After,
		limitPlusOne,
	)
	if err != nil {
		return tournaments.ListResult{}, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()

	items := make([]tournaments.Tournament, 0, limitPlusOne)
	for rows.Next() {
		tournament, err := scanTournament(rows)
		if err != nil {
			return tournaments.ListResult{}, err
		}
		items = append(items, tournament)
	}
	if err := rows.Err(); err != nil {
		return tournaments.ListResult{}, fmt.Errorf("iterate tournaments: %w", err)
	}

	result := tournaments.ListResult{}
	if len(items) > limit {
		items = items[:limit]
		result.NextCursor = items[len(items)-1].ULID
	}
	result.Tournaments = items
	return result, nil
}

func (r *TournamentRepository) GetByULID(ctx context.Context, ulid string) (*tournaments.Tournament, error) {
	queryer := r.queryer()

	row := queryer.QueryRow(ctx, `
SELECT `+tournamentColumns+`
  FROM tournaments t
 WHERE t.ulid = $1
`, ulid)

	tournament, err := scanTournament(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tournaments.ErrNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

// Upsert inserts a tournament keyed on its dedup hash. Re-discovering an
// existing listing refreshes its details and keeps the original ULID. The
// returned flag reports whether a new row was created.
func (r *TournamentRepository) Upsert(ctx context.Context, params tournaments.TournamentUpsertParams) (*tournaments.Tournament, bool, error) {
	queryer := r.queryer()

	row := queryer.QueryRow(ctx, `
INSERT INTO tournaments (
    ulid, name, start_date, end_date, rink, city, state, country,
    age_levels, url, source, dedup_hash
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (dedup_hash) DO UPDATE
   SET name = EXCLUDED.name,
       end_date = EXCLUDED.end_date,
       rink = EXCLUDED.rink,
       city = EXCLUDED.city,
       state = EXCLUDED.state,
       country = EXCLUDED.country,
       age_levels = EXCLUDED.age_levels,
       url = EXCLUDED.url,
       source = EXCLUDED.source,
       updated_at = now()
RETURNING id, ulid, name, start_date, end_date, rink, city, state, country,
          age_levels, url, source, dedup_hash, created_at, updated_at,
          (xmax = 0) AS inserted
`,
		params.ULID,
		params.Name,
		params.StartDate,
		nullableString(params.EndDate),
		nullableString(params.Rink),
		nullableString(params.City),
		nullableString(params.State),
		nullableString(params.Country),
		params.AgeLevels,
		nullableString(params.URL),
		params.Source,
		params.DedupHash,
	)

	var (
		tournament tournaments.Tournament
		endDate    *string
		rink       *string
		city       *string
		state      *string
		country    *string
		url        *string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		inserted   bool
	)
	if err := row.Scan(
		&tournament.ID,
		&tournament.ULID,
		&tournament.Name,
		&tournament.StartDate,
		&endDate,
		&rink,
		&city,
		&state,
		&country,
		&tournament.AgeLevels,
		&url,
		&tournament.Source,
		&tournament.DedupHash,
		&createdAt,
		&updatedAt,
		&inserted,
	); err != nil {
		return nil, false, fmt.Errorf("upsert tournament: %w", err)
	}

	tournament.EndDate = derefString(endDate)
	tournament.Rink = derefString(rink)
	tournament.City = derefString(city)
	tournament.State = derefString(state)
	tournament.Country = derefString(country)
	tournament.URL = derefString(url)
	if createdAt.Valid {
		tournament.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tournament.UpdatedAt = updatedAt.Time
	}
	return &tournament, inserted, nil
}

func scanTournament(row pgx.Row) (tournaments.Tournament, error) {
	var (
		tournament tournaments.Tournament
		endDate    *string
		rink       *string
		city       *string
		state      *string
		country    *string
		url        *string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(
		&tournament.ID,
		&tournament.ULID,
		&tournament.Name,
		&tournament.StartDate,
		&endDate,
		&rink,
		&city,
		&state,
		&country,
		&tournament.AgeLevels,
		&url,
		&tournament.Source,
		&tournament.DedupHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tournaments.Tournament{}, err
		}
		return tournaments.Tournament{}, fmt.Errorf("scan tournament: %w", err)
	}

	tournament.EndDate = derefString(endDate)
	tournament.Rink = derefString(rink)
	tournament.City = derefString(city)
	tournament.State = derefString(state)
	tournament.Country = derefString(country)
	tournament.URL = derefString(url)
	if createdAt.Valid {
		tournament.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tournament.UpdatedAt = updatedAt.Time
	}

	if tournament.AgeLevels == nil {
		tournament.AgeLevels = []string{}
	}
	return tournament, nil
}
