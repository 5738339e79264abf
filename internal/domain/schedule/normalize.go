package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const dayLayout = "2006-01-02"

var (
	clock12Re = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::\d{2})?\s*(AM|PM)$`)
	clock24Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2}(?:\.\d+)?)?(?:\s*[+-]\d{1,2}(?::?\d{2})?)?$`)
	dayRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseClock converts a time-of-day string into minutes since local midnight.
// Accepted forms: "HH:MM", "HH:MM:SS", "HH:MM:SS±HH[:MM]", and "h:mm AM/PM".
// A trailing numeric timezone offset is stripped and the hour:minute reading
// is taken at face value, never converted. Upstream data carries these
// suffixes inconsistently and callers depend on the face-value reading.
func ParseClock(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if m := clock12Re.FindStringSubmatch(value); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours < 1 || hours > 12 || minutes > 59 {
			return 0, false
		}
		hours = hours % 12
		if strings.EqualFold(m[3], "PM") {
			hours += 12
		}
		return hours*60 + minutes, true
	}

	if m := clock24Re.FindStringSubmatch(value); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours > 23 || minutes > 59 {
			return 0, false
		}
		return hours*60 + minutes, true
	}

	return 0, false
}

// ParseDay extracts the local calendar date as YYYY-MM-DD from a bare date,
// a "YYYY-MM-DD HH:MM:SS" stamp, or an ISO datetime. The date portion is
// taken as written; no timezone arithmetic moves events across midnight.
func ParseDay(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) < 10 {
		return "", false
	}
	head := value[:10]
	if !dayRe.MatchString(head) {
		return "", false
	}
	if _, err := time.ParseInLocation(dayLayout, head, time.Local); err != nil {
		return "", false
	}
	return head, true
}

// Day formats a time.Time as a local calendar date.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// clockFromStamp pulls the time-of-day component out of a combined
// date-time string such as "2024-01-01T16:00:00" or "2024-01-01 16:00:00".
func clockFromStamp(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexAny(value, "T "); idx >= 0 {
		return value[idx+1:]
	}
	return ""
}

// FormatClock renders minutes-since-midnight as a 12-hour reading, e.g.
// 840 -> "2:00 PM".
func FormatClock(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}

type OpponentKind string

const (
	OpponentUnknown OpponentKind = ""
	OpponentID      OpponentKind = "id"
	OpponentTeam    OpponentKind = "team"
	OpponentLabel   OpponentKind = "label"
)

// Opponent models the shapes an opponent reference arrives in: a bare id, a
// team record carrying a name, or a free-form label. Kind narrows which
// field is meaningful.
type Opponent struct {
	Kind     OpponentKind
	ID       string
	TeamName string
	Label    string
}

// DisplayName returns the human-readable opponent name, or "" when the
// opponent carries no displayable name (bare id or unknown).
func (o Opponent) DisplayName() string {
	switch o.Kind {
	case OpponentTeam:
		return strings.TrimSpace(o.TeamName)
	case OpponentLabel:
		return strings.TrimSpace(o.Label)
	default:
		return ""
	}
}

// GameInput is a raw game or tournament record before normalization. Date
// may be a bare date or a combined date-time stamp; Time, when empty, is
// recovered from the stamp.
type GameInput struct {
	ID             string
	Type           EventType
	Date           string
	Time           string
	EndTime        string
	Opponent       Opponent
	TournamentName string
	Category       string
	Rink           string
	City           string
	State          string
	Country        string
}

// NormalizeGame maps a raw record onto a canonical Event. It returns false
// when the date or start time cannot be normalized; such records are logged
// and take no part in risk evaluation.
func NormalizeGame(in GameInput) (Event, bool) {
	day, ok := ParseDay(in.Date)
	if !ok {
		log.Debug().Str("game_id", in.ID).Str("date", in.Date).
			Msg("unparseable game date, excluded from risk evaluation")
		return Event{}, false
	}

	clockValue := strings.TrimSpace(in.Time)
	if clockValue == "" {
		clockValue = clockFromStamp(in.Date)
	}
	start, ok := ParseClock(clockValue)
	if !ok {
		log.Debug().Str("game_id", in.ID).Str("time", clockValue).
			Msg("unparseable game time, excluded from risk evaluation")
		return Event{}, false
	}

	eventType := in.Type
	if eventType == "" {
		eventType = TypeGame
	}

	event := Event{
		ID:           in.ID,
		Type:         eventType,
		DisplayName:  displayName(in),
		Date:         day,
		StartMinutes: start,
		Rink:         in.Rink,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
	}
	if end, ok := ParseClock(in.EndTime); ok {
		event.EndMinutes = &end
	}
	return event, true
}

// NormalizeGames maps a batch of records, dropping any that fail.
func NormalizeGames(inputs []GameInput) []Event {
	events := make([]Event, 0, len(inputs))
	for _, in := range inputs {
		if event, ok := NormalizeGame(in); ok {
			events = append(events, event)
		}
	}
	return events
}

func displayName(in GameInput) string {
	if name := in.Opponent.DisplayName(); name != "" {
		return name
	}
	if name := strings.TrimSpace(in.TournamentName); name != "" {
		return name
	}
	if name := strings.TrimSpace(in.Category); name != "" {
		return name
	}
	return "Game"
}
