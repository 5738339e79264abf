package games

import (
	"strings"

	"github.com/rinkline/server/internal/domain/schedule"
)

// NormalizeGameInput trims values for consistent storage and comparison.
func NormalizeGameInput(input GameInput) GameInput {
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.OpponentID = strings.TrimSpace(input.OpponentID)
	input.OpponentName = strings.TrimSpace(input.OpponentName)
	input.OpponentLabel = strings.TrimSpace(input.OpponentLabel)
	input.TournamentName = strings.TrimSpace(input.TournamentName)
	input.Category = strings.TrimSpace(input.Category)
	input.Rink = strings.TrimSpace(input.Rink)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.Country = strings.TrimSpace(input.Country)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	input.Notes = strings.TrimSpace(input.Notes)

	if input.Type == "" {
		input.Type = string(schedule.TypeGame)
	}
	if input.Status == "" {
		input.Status = StatusScheduled
	}
	return input
}

// ScheduleInput converts a stored game to the detector's raw record shape,
// narrowing the opponent columns into the tagged union.
func ScheduleInput(g Game) schedule.GameInput {
	return schedule.GameInput{
		ID:             g.ULID,
		Type:           schedule.EventType(g.Type),
		Date:           g.Date,
		Time:           g.Time,
		EndTime:        g.EndTime,
		Opponent:       opponentOf(g),
		TournamentName: g.TournamentName,
		Category:       g.Category,
		Rink:           g.Rink,
		City:           g.City,
		State:          g.State,
		Country:        g.Country,
	}
}

func opponentOf(g Game) schedule.Opponent {
	switch {
	case g.OpponentName != "":
		return schedule.Opponent{Kind: schedule.OpponentTeam, ID: g.OpponentID, TeamName: g.OpponentName}
	case g.OpponentLabel != "":
		return schedule.Opponent{Kind: schedule.OpponentLabel, ID: g.OpponentID, Label: g.OpponentLabel}
	case g.OpponentID != "":
		return schedule.Opponent{Kind: schedule.OpponentID, ID: g.OpponentID}
	default:
		return schedule.Opponent{}
	}
}

// ScheduleInputs converts a batch of stored games.
func ScheduleInputs(items []Game) []schedule.GameInput {
	inputs := make([]schedule.GameInput, 0, len(items))
	for _, g := range items {
		inputs = append(inputs, ScheduleInput(g))
	}
	return inputs
}
