package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		minutes int
		ok      bool
	}{
		{name: "24 hour", value: "14:00", minutes: 840, ok: true},
		{name: "24 hour with seconds", value: "14:00:30", minutes: 840, ok: true},
		{name: "timezone offset stripped not converted", value: "14:00:00+05", minutes: 840, ok: true},
		{name: "negative offset stripped", value: "09:15:00-08", minutes: 555, ok: true},
		{name: "offset with minutes stripped", value: "14:00:00+05:30", minutes: 840, ok: true},
		{name: "single digit hour", value: "9:05", minutes: 545, ok: true},
		{name: "midnight", value: "00:00", minutes: 0, ok: true},
		{name: "last minute", value: "23:59", minutes: 1439, ok: true},
		{name: "am", value: "9:05 AM", minutes: 545, ok: true},
		{name: "pm", value: "2:00 PM", minutes: 840, ok: true},
		{name: "lowercase pm", value: "2:00 pm", minutes: 840, ok: true},
		{name: "noon", value: "12:00 PM", minutes: 720, ok: true},
		{name: "midnight 12 hour", value: "12:00 AM", minutes: 0, ok: true},
		{name: "whitespace", value: "  7:30 PM  ", minutes: 1170, ok: true},
		{name: "hour out of range", value: "25:00", ok: false},
		{name: "minutes out of range", value: "14:75", ok: false},
		{name: "12 hour zero", value: "0:30 AM", ok: false},
		{name: "12 hour thirteen", value: "13:00 PM", ok: false},
		{name: "garbage", value: "soon", ok: false},
		{name: "empty", value: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			minutes, ok := ParseClock(tc.value)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.minutes, minutes)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name  string
		value string
		day   string
		ok    bool
	}{
		{name: "bare date", value: "2024-01-01", day: "2024-01-01", ok: true},
		{name: "iso datetime", value: "2024-01-01T16:00:00", day: "2024-01-01", ok: true},
		{name: "space separated stamp", value: "2024-01-01 14:00:00", day: "2024-01-01", ok: true},
		{name: "rfc3339 with zone", value: "2024-06-15T10:00:00Z", day: "2024-06-15", ok: true},
		{name: "not a calendar day", value: "2024-13-40", ok: false},
		{name: "too short", value: "2024-1-1", ok: false},
		{name: "garbage", value: "next tuesday", ok: false},
		{name: "empty", value: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			day, ok := ParseDay(tc.value)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.day, day)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "2:00 PM", FormatClock(840))
	assert.Equal(t, "12:00 AM", FormatClock(0))
	assert.Equal(t, "12:30 PM", FormatClock(750))
	assert.Equal(t, "9:05 AM", FormatClock(545))
	assert.Equal(t, "11:59 PM", FormatClock(1439))
}

func TestNormalizeGameDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input GameInput
		want  string
	}{
		{
			name: "opponent team name wins",
			input: GameInput{
				Opponent:       Opponent{Kind: OpponentTeam, TeamName: "Ice Hawks U13"},
				TournamentName: "Winter Classic",
				Category:       "U13 AA",
			},
			want: "Ice Hawks U13",
		},
		{
			name: "opponent label next",
			input: GameInput{
				Opponent:       Opponent{Kind: OpponentLabel, Label: "TBD opponent"},
				TournamentName: "Winter Classic",
			},
			want: "TBD opponent",
		},
		{
			name: "bare opponent id falls through to tournament",
			input: GameInput{
				Opponent:       Opponent{Kind: OpponentID, ID: "team-42"},
				TournamentName: "Winter Classic",
			},
			want: "Winter Classic",
		},
		{
			name:  "category label next",
			input: GameInput{Category: "U13 AA"},
			want:  "U13 AA",
		},
		{
			name:  "generic fallback",
			input: GameInput{},
			want:  "Game",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.ID = "g1"
			tc.input.Date = "2030-01-01"
			tc.input.Time = "10:00"

			event, ok := NormalizeGame(tc.input)

			require.True(t, ok)
			assert.Equal(t, tc.want, event.DisplayName)
		})
	}
}

func TestNormalizeGameDropsUnparseable(t *testing.T) {
	_, ok := NormalizeGame(GameInput{ID: "g1", Date: "whenever", Time: "10:00"})
	require.False(t, ok)

	_, ok = NormalizeGame(GameInput{ID: "g1", Date: "2030-01-01", Time: "sometime"})
	require.False(t, ok)
}

func TestNormalizeGameClockFromStamp(t *testing.T) {
	event, ok := NormalizeGame(GameInput{ID: "g1", Date: "2030-01-01T16:00:00"})

	require.True(t, ok)
	assert.Equal(t, "2030-01-01", event.Date)
	assert.Equal(t, 960, event.StartMinutes)
}

func TestNormalizeGameEndTime(t *testing.T) {
	event, ok := NormalizeGame(GameInput{ID: "g1", Date: "2030-01-01", Time: "10:00", EndTime: "11:30"})

	require.True(t, ok)
	require.NotNil(t, event.EndMinutes)
	assert.Equal(t, 690, *event.EndMinutes)

	event, ok = NormalizeGame(GameInput{ID: "g2", Date: "2030-01-01", Time: "10:00", EndTime: "bad"})
	require.True(t, ok)
	assert.Nil(t, event.EndMinutes)
}

func TestNormalizeGamesFiltersFailures(t *testing.T) {
	events := NormalizeGames([]GameInput{
		{ID: "good", Date: "2030-01-01", Time: "10:00"},
		{ID: "bad", Date: "2030-01-01", Time: "not a time"},
	})

	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].ID)
}
