package games

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/schedule"
)

// TimeConflictError is returned from Create and Update when the candidate
// time falls inside the flat spacing window of another game on the same day.
// The embedded conflict carries the formatted time and the blocking game's id
// for the caller to render.
type TimeConflictError struct {
	Conflict schedule.TimeConflict
}

func (e TimeConflictError) Error() string {
	return e.Conflict.Message
}

type Service struct {
	repo      Repository
	riskCfg   schedule.Config
	validator *validator.Validate
	now       func() time.Time
}

func NewService(repo Repository, riskCfg schedule.Config) *Service {
	return &Service{
		repo:      repo,
		riskCfg:   riskCfg,
		validator: validator.New(),
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error) {
	return s.repo.List(ctx, filters, pagination)
}

func (s *Service) GetByULID(ctx context.Context, ulid string) (*Game, error) {
	return s.repo.GetByULID(ctx, ulid)
}

// Create validates and stores a new game. The inline spacing rule blocks the
// write when another game on the same team sits within four hours; the
// schedule evaluator's advisory risks never block anything.
func (s *Service) Create(ctx context.Context, input GameInput) (*Game, error) {
	input = NormalizeGameInput(input)
	if err := validateGameInput(s.validator, input); err != nil {
		return nil, err
	}

	if conflict, err := s.checkSpacing(ctx, input.TeamID, input.Date, input.Time, ""); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, TimeConflictError{Conflict: *conflict}
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint game ulid: %w", err)
	}

	game, err := s.repo.Create(ctx, createParams(ulid, input))
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

// Update validates and stores changes to an existing game. The game being
// edited is excluded from the spacing check so it cannot conflict with
// itself.
func (s *Service) Update(ctx context.Context, ulid string, input GameInput) (*Game, error) {
	input = NormalizeGameInput(input)
	if err := validateGameInput(s.validator, input); err != nil {
		return nil, err
	}

	if conflict, err := s.checkSpacing(ctx, input.TeamID, input.Date, input.Time, ulid); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, TimeConflictError{Conflict: *conflict}
	}

	game, err := s.repo.Update(ctx, ulid, updateParams(input))
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Service) Delete(ctx context.Context, ulid string) error {
	return s.repo.Delete(ctx, ulid)
}

// ListTeams returns the ULIDs of every team with at least one game.
func (s *Service) ListTeams(ctx context.Context) ([]string, error) {
	return s.repo.ListTeamULIDs(ctx)
}

// EvaluateRisks runs the schedule risk detector over a team's games.
func (s *Service) EvaluateRisks(ctx context.Context, teamULID string) (schedule.Evaluation, error) {
	items, err := s.repo.ListByTeam(ctx, teamULID)
	if err != nil {
		return schedule.Evaluation{}, fmt.Errorf("list team games: %w", err)
	}
	events := schedule.NormalizeGames(ScheduleInputs(items))
	return schedule.Evaluate(events, s.now(), s.riskCfg), nil
}

// CheckTime applies the inline form validator against a team's games.
// currentGameULID may be empty for new games.
func (s *Service) CheckTime(ctx context.Context, teamULID, date, clock, currentGameULID string) (*schedule.TimeConflict, error) {
	return s.checkSpacing(ctx, teamULID, date, clock, currentGameULID)
}

func (s *Service) checkSpacing(ctx context.Context, teamULID, date, clock, currentGameULID string) (*schedule.TimeConflict, error) {
	items, err := s.repo.ListByTeam(ctx, teamULID)
	if err != nil {
		return nil, fmt.Errorf("list team games: %w", err)
	}
	events := schedule.NormalizeGames(ScheduleInputs(items))
	return schedule.CheckGameTime(date, clock, events, currentGameULID), nil
}

func createParams(ulid string, input GameInput) GameCreateParams {
	return GameCreateParams{
		ULID:           ulid,
		TeamID:         input.TeamID,
		Type:           input.Type,
		Date:           input.Date,
		Time:           input.Time,
		EndTime:        input.EndTime,
		OpponentID:     input.OpponentID,
		OpponentName:   input.OpponentName,
		OpponentLabel:  input.OpponentLabel,
		TournamentName: input.TournamentName,
		Category:       input.Category,
		Rink:           input.Rink,
		City:           input.City,
		State:          input.State,
		Country:        input.Country,
		Status:         input.Status,
		Notes:          input.Notes,
	}
}

func updateParams(input GameInput) GameUpdateParams {
	return GameUpdateParams{
		Date:           input.Date,
		Time:           input.Time,
		EndTime:        input.EndTime,
		OpponentID:     input.OpponentID,
		OpponentName:   input.OpponentName,
		OpponentLabel:  input.OpponentLabel,
		TournamentName: input.TournamentName,
		Category:       input.Category,
		Rink:           input.Rink,
		City:           input.City,
		State:          input.State,
		Country:        input.Country,
		Status:         input.Status,
		Notes:          input.Notes,
	}
}

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseFilters reads list query parameters.
func ParseFilters(values url.Values) (Filters, Pagination, error) {
	filters := Filters{}
	pagination := Pagination{Limit: 50}

	filters.TeamULID = strings.TrimSpace(values.Get("teamId"))
	if filters.TeamULID != "" {
		if err := ids.ValidateULID(filters.TeamULID); err != nil {
			return filters, pagination, FilterError{Field: "teamId", Message: "invalid ULID"}
		}
	}

	fromDate, err := parseDayParam("from", values.Get("from"))
	if err != nil {
		return filters, pagination, err
	}
	toDate, err := parseDayParam("to", values.Get("to"))
	if err != nil {
		return filters, pagination, err
	}
	if fromDate != "" && toDate != "" && toDate < fromDate {
		return filters, pagination, FilterError{Field: "to", Message: "must be on or after from"}
	}
	filters.FromDate = fromDate
	filters.ToDate = toDate

	status := strings.ToLower(strings.TrimSpace(values.Get("status")))
	if status != "" && !isAllowedStatus(status) {
		return filters, pagination, FilterError{Field: "status", Message: "unsupported status"}
	}
	filters.Status = status

	gameType := strings.ToLower(strings.TrimSpace(values.Get("type")))
	if gameType != "" && gameType != string(schedule.TypeGame) && gameType != string(schedule.TypeTournament) {
		return filters, pagination, FilterError{Field: "type", Message: "must be game or tournament"}
	}
	filters.Type = gameType

	limit, err := parseLimit(values)
	if err != nil {
		return filters, pagination, err
	}
	pagination.Limit = limit

	after := strings.TrimSpace(values.Get("after"))
	if after != "" {
		if err := ids.ValidateULID(after); err != nil {
			return filters, pagination, FilterError{Field: "after", Message: "must be a valid ULID"}
		}
	}
	pagination.After = after

	return filters, pagination, nil
}

func parseDayParam(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	day, ok := schedule.ParseDay(value)
	if !ok || len(value) != len(day) {
		return "", FilterError{Field: field, Message: "must be ISO8601 date"}
	}
	return day, nil
}

func parseLimit(values url.Values) (int, error) {
	limit := 50
	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit == "" {
		return limit, nil
	}
	parsed, err := strconv.Atoi(rawLimit)
	if err != nil {
		return 0, FilterError{Field: "limit", Message: "must be a number"}
	}
	if parsed < 1 || parsed > 200 {
		return 0, FilterError{Field: "limit", Message: "must be between 1 and 200"}
	}
	return parsed, nil
}
