package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// minGameSpacing is the flat spacing rule applied while a game's date/time
// is being edited. It is intentionally distinct from the Config thresholds:
// this check blocks form submission, the evaluator's risks are advisory.
const minGameSpacing = 4 * time.Hour

// TimeConflict reports an inline validation failure. Nil means the candidate
// time is acceptable.
type TimeConflict struct {
	Message           string `json:"message"`
	ConflictingTime   string `json:"conflictingTime"`
	ConflictingGameID string `json:"conflictingGameId"`
}

// CheckGameTime validates a candidate date/time against a team's existing
// events. The event matching currentGameID is skipped so a record does not
// conflict with itself while being edited. The first existing same-day event
// starting strictly within four hours of the candidate wins, in whatever
// order the caller supplied; exactly four hours apart is allowed. An
// unparseable candidate cannot be compared and passes.
func CheckGameTime(date, clock string, existing []Event, currentGameID string) *TimeConflict {
	day, ok := ParseDay(date)
	if !ok {
		log.Debug().Str("date", date).Msg("unparseable candidate date, skipping time conflict check")
		return nil
	}

	clockValue := strings.TrimSpace(clock)
	if clockValue == "" {
		clockValue = clockFromStamp(date)
	}
	candidate, ok := ParseClock(clockValue)
	if !ok {
		log.Debug().Str("time", clockValue).Msg("unparseable candidate time, skipping time conflict check")
		return nil
	}

	window := int(minGameSpacing.Minutes())
	for _, event := range existing {
		if event.ID == currentGameID || event.Date != day {
			continue
		}
		if absInt(candidate-event.StartMinutes) < window {
			formatted := FormatClock(event.StartMinutes)
			return &TimeConflict{
				Message: fmt.Sprintf("Cannot schedule game within %d hours of existing game at %s",
					int(minGameSpacing.Hours()), formatted),
				ConflictingTime:   formatted,
				ConflictingGameID: event.ID,
			}
		}
	}
	return nil
}
