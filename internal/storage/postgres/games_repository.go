package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rinkline/server/internal/domain/games"
)

var _ games.Repository = (*GameRepository)(nil)

const gameColumns = `g.id, g.ulid, g.team_id, g.game_type, g.game_date, g.game_time, g.end_time,
       g.opponent_id, g.opponent_name, g.opponent_label, g.tournament_name, g.category,
       g.rink, g.city, g.state, g.country, g.status, g.notes, g.created_at, g.updated_at`

func (r *GameRepository) List(ctx context.Context, filters games.Filters, paginationArgs games.Pagination) (games.ListResult, error) {
	queryer := r.queryer()

	limit := paginationArgs.Limit
	if limit <= 0 {
		limit = 50
	}
	limitPlusOne := limit + 1

	rows, err := queryer.Query(ctx, `
SELECT `+gameColumns+`
  FROM games g
 WHERE ($1 = '' OR g.team_id = $1)
   AND ($2 = '' OR g.game_date >= $2)
   AND ($3 = '' OR g.game_date <= $3)
   AND ($4 = '' OR g.status = $4)
   AND ($5 = '' OR g.game_type = $5)
   AND ($6 = '' OR (g.game_date, g.ulid) > (SELECT c.game_date, c.ulid FROM games c WHERE c.ulid = $6))
 ORDER BY g.game_date ASC, g.ulid ASC
 LIMIT $7
`,
		filters.TeamULID,
		filters.FromDate,
		filters.ToDate,
		filters.Status,
		filters.Type,
		paginationArgs.After,
		limitPlusOne,
	)
	if err != nil {
		return games.ListResult{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	items := make([]games.Game, 0, limitPlusOne)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return games.ListResult{}, err
		}
		items = append(items, game)
	}
	if err := rows.Err(); err != nil {
		return games.ListResult{}, fmt.Errorf("iterate games: %w", err)
	}

	result := games.ListResult{}
	if len(items) > limit {
		items = items[:limit]
		result.NextCursor = items[len(items)-1].ULID
	}
	result.Games = items
	return result, nil
}

func (r *GameRepository) ListByTeam(ctx context.Context, teamULID string) ([]games.Game, error) {
	queryer := r.queryer()

	rows, err := queryer.Query(ctx, `
SELECT `+gameColumns+`
  FROM games g
 WHERE g.team_id = $1
 ORDER BY g.game_date ASC, g.game_time ASC, g.ulid ASC
`, teamULID)
	if err != nil {
		return nil, fmt.Errorf("list team games: %w", err)
	}
	defer rows.Close()

	items := make([]games.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team games: %w", err)
	}
	return items, nil
}

func (r *GameRepository) ListTeamULIDs(ctx context.Context) ([]string, error) {
	queryer := r.queryer()

	rows, err := queryer.Query(ctx, `SELECT DISTINCT team_id FROM games ORDER BY team_id`)
	if err != nil {
		return nil, fmt.Errorf("list team ids: %w", err)
	}
	defer rows.Close()

	teams := make([]string, 0)
	for rows.Next() {
		var teamID string
		if err := rows.Scan(&teamID); err != nil {
			return nil, fmt.Errorf("scan team id: %w", err)
		}
		teams = append(teams, teamID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team ids: %w", err)
	}
	return teams, nil
}

func (r *GameRepository) GetByULID(ctx context.Context, ulid string) (*games.Game, error) {
	queryer := r.queryer()

	row := queryer.QueryRow(ctx, `
SELECT `+gameColumns+`
  FROM games g
 WHERE g.ulid = $1
`, ulid)

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, games.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) Create(ctx context.Context, params games.GameCreateParams) (*games.Game, error) {
	queryer := r.queryer()

	row := queryer.QueryRow(ctx, `
INSERT INTO games (
    ulid, team_id, game_type, game_date, game_time, end_time,
    opponent_id, opponent_name, opponent_label, tournament_name, category,
    rink, city, state, country, status, notes
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING `+createdGameColumns(),
		params.ULID,
		params.TeamID,
		params.Type,
		params.Date,
		params.Time,
		nullableString(params.EndTime),
		nullableString(params.OpponentID),
		nullableString(params.OpponentName),
		nullableString(params.OpponentLabel),
		nullableString(params.TournamentName),
		nullableString(params.Category),
		nullableString(params.Rink),
		nullableString(params.City),
		nullableString(params.State),
		nullableString(params.Country),
		params.Status,
		nullableString(params.Notes),
	)

	game, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &game, nil
}

func (r *GameRepository) Update(ctx context.Context, ulid string, params games.GameUpdateParams) (*games.Game, error) {
	queryer := r.queryer()

	row := queryer.QueryRow(ctx, `
UPDATE games
   SET game_date = $2,
       game_time = $3,
       end_time = $4,
       opponent_id = $5,
       opponent_name = $6,
       opponent_label = $7,
       tournament_name = $8,
       category = $9,
       rink = $10,
       city = $11,
       state = $12,
       country = $13,
       status = $14,
       notes = $15,
       updated_at = now()
 WHERE ulid = $1
RETURNING `+createdGameColumns(),
		ulid,
		params.Date,
		params.Time,
		nullableString(params.EndTime),
		nullableString(params.OpponentID),
		nullableString(params.OpponentName),
		nullableString(params.OpponentLabel),
		nullableString(params.TournamentName),
		nullableString(params.Category),
		nullableString(params.Rink),
		nullableString(params.City),
		nullableString(params.State),
		nullableString(params.Country),
		params.Status,
		nullableString(params.Notes),
	)

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, games.ErrNotFound
		}
		return nil, fmt.Errorf("update game: %w", err)
	}
	return &game, nil
}

func (r *GameRepository) Delete(ctx context.Context, ulid string) error {
	queryer := r.queryer()

	tag, err := queryer.Exec(ctx, `DELETE FROM games WHERE ulid = $1`, ulid)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return games.ErrNotFound
	}
	return nil
}

// createdGameColumns is gameColumns without the table alias, for RETURNING clauses.
func createdGameColumns() string {
	return `id, ulid, team_id, game_type, game_date, game_time, end_time,
       opponent_id, opponent_name, opponent_label, tournament_name, category,
       rink, city, state, country, status, notes, created_at, updated_at`
}

func scanGame(row pgx.Row) (games.Game, error) {
	var (
		id             string
		ulid           string
		teamID         string
		gameType       string
		gameDate       string
		gameTime       string
		endTime        *string
		opponentID     *string
		opponentName   *string
		opponentLabel  *string
		tournamentName *string
		category       *string
		rink           *string
		city           *string
		state          *string
		country        *string
		status         string
		notes          *string
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&ulid,
		&teamID,
		&gameType,
		&gameDate,
		&gameTime,
		&endTime,
		&opponentID,
		&opponentName,
		&opponentLabel,
		&tournamentName,
		&category,
		&rink,
		&city,
		&state,
		&country,
		&status,
		&notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return games.Game{}, err
		}
		return games.Game{}, fmt.Errorf("scan game: %w", err)
	}

	game := games.Game{
		ID:             id,
		ULID:           ulid,
		TeamID:         teamID,
		Type:           gameType,
		Date:           gameDate,
		Time:           gameTime,
		EndTime:        derefString(endTime),
		OpponentID:     derefString(opponentID),
		OpponentName:   derefString(opponentName),
		OpponentLabel:  derefString(opponentLabel),
		TournamentName: derefString(tournamentName),
		Category:       derefString(category),
		Rink:           derefString(rink),
		City:           derefString(city),
		State:          derefString(state),
		Country:        derefString(country),
		Status:         status,
		Notes:          derefString(notes),
		CreatedAt:      time.Time{},
		UpdatedAt:      time.Time{},
	}
	if createdAt.Valid {
		game.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		game.UpdatedAt = updatedAt.Time
	}
	return game, nil
}
