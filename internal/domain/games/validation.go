package games

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/schedule"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GameInput is the create/update payload for a game.
type GameInput struct {
	TeamID         string `json:"teamId" validate:"required"`
	Type           string `json:"type,omitempty"`
	Date           string `json:"date" validate:"required"`
	Time           string `json:"time" validate:"required"`
	EndTime        string `json:"endTime,omitempty"`
	OpponentID     string `json:"opponentId,omitempty"`
	OpponentName   string `json:"opponentName,omitempty" validate:"max=200"`
	OpponentLabel  string `json:"opponentLabel,omitempty" validate:"max=200"`
	TournamentName string `json:"tournamentName,omitempty" validate:"max=200"`
	Category       string `json:"category,omitempty" validate:"max=100"`
	Rink           string `json:"rink,omitempty" validate:"max=200"`
	City           string `json:"city,omitempty" validate:"max=100"`
	State          string `json:"state,omitempty" validate:"max=100"`
	Country        string `json:"country,omitempty" validate:"max=100"`
	Status         string `json:"status,omitempty"`
	Notes          string `json:"notes,omitempty" validate:"max=2000"`
}

// validateGameInput checks a normalized input. Unlike risk evaluation, which
// silently drops records it cannot read, direct writes reject unparseable
// dates and times so bad data never enters storage.
func validateGameInput(v *validator.Validate, input GameInput) error {
	if err := v.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return ValidationError{Field: first.Field(), Message: validationMessage(first)}
		}
		return ValidationError{Message: err.Error()}
	}

	if err := ids.ValidateULID(input.TeamID); err != nil {
		return ValidationError{Field: "teamId", Message: "must be a valid ULID"}
	}
	if _, ok := schedule.ParseDay(input.Date); !ok {
		return ValidationError{Field: "date", Message: "must be a calendar date (YYYY-MM-DD)"}
	}
	if _, ok := schedule.ParseClock(input.Time); !ok {
		return ValidationError{Field: "time", Message: "must be a time of day (HH:MM or h:mm AM/PM)"}
	}
	if input.EndTime != "" {
		if _, ok := schedule.ParseClock(input.EndTime); !ok {
			return ValidationError{Field: "endTime", Message: "must be a time of day (HH:MM or h:mm AM/PM)"}
		}
	}
	if input.Type != string(schedule.TypeGame) && input.Type != string(schedule.TypeTournament) {
		return ValidationError{Field: "type", Message: "must be game or tournament"}
	}
	if !isAllowedStatus(input.Status) {
		return ValidationError{Field: "status", Message: "must be scheduled, completed, or cancelled"}
	}
	return nil
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

func isAllowedStatus(value string) bool {
	switch value {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
