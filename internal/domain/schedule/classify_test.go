package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutesPtr(v int) *int { return &v }

func testEvent(id string, start int, rink string) Event {
	return Event{
		ID:           id,
		Type:         TypeGame,
		DisplayName:  id,
		Date:         "2030-01-05",
		StartMinutes: start,
		Rink:         rink,
		City:         "Springfield",
		State:        "MA",
	}
}

func TestClassifyPairHardConflictBoundary(t *testing.T) {
	cfg := DefaultConfig()

	// Implied 90-minute durations touching end-to-start: half-open
	// intervals, so no overlap, and 90 < 120 makes it a close start.
	a := testEvent("a", 600, "Rink A")
	b := testEvent("b", 690, "Rink A")
	riskType, ok := classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskCloseStart, riskType)

	// One minute closer and the intervals overlap.
	b.StartMinutes = 689
	riskType, ok = classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskHardTimeConflict, riskType)
}

func TestClassifyPairExplicitEndTimes(t *testing.T) {
	cfg := DefaultConfig()

	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(660)
	b := testEvent("b", 650, "Rink A")

	riskType, ok := classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskHardTimeConflict, riskType)
}

func TestClassifyPairCloseStartBoundary(t *testing.T) {
	cfg := DefaultConfig()

	// Short explicit durations so the intervals never overlap.
	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(630)
	b := testEvent("b", 720, "Rink A")
	b.EndMinutes = minutesPtr(750)

	// Exactly at the 120-minute threshold: allowed.
	_, ok := classifyPair(a, b, cfg)
	assert.False(t, ok)

	// One minute under: warned.
	b.StartMinutes = 719
	riskType, ok := classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskCloseStart, riskType)
}

func TestClassifyPairTravelRisk(t *testing.T) {
	cfg := DefaultConfig()

	// 10:00-11:30 and 13:35-15:05 at different rinks. Start delta is 215
	// minutes so close-start stays quiet; the 5-minute gap is under the
	// 30-minute travel threshold.
	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(810)
	b := testEvent("b", 815, "Rink B")

	riskType, ok := classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskSameDayTravel, riskType)

	// Same rink triple: no travel concern.
	b.Rink = "Rink A"
	_, ok = classifyPair(a, b, cfg)
	assert.False(t, ok)
}

func TestClassifyPairTravelGapBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(810)
	b := testEvent("b", 840, "Rink B")

	// Gap of exactly 30 minutes: safe.
	_, ok := classifyPair(a, b, cfg)
	assert.False(t, ok)

	// Gap of exactly zero is not a travel risk under this rule, and with a
	// 210-minute start delta neither earlier rule fires.
	b.StartMinutes = 810
	b.EndMinutes = minutesPtr(900)
	_, ok = classifyPair(a, b, cfg)
	assert.False(t, ok)
}

func TestClassifyPairPriorityCloseStartBeatsTravel(t *testing.T) {
	cfg := DefaultConfig()

	// 10:00-11:30 and 11:35 at different rinks: the 95-minute start delta
	// is inside the close-start window, which outranks the travel rule.
	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(690)
	b := testEvent("b", 695, "Rink B")

	riskType, ok := classifyPair(a, b, cfg)
	require.True(t, ok)
	assert.Equal(t, RiskCloseStart, riskType)
}

func TestClassifyPairOrderIndependent(t *testing.T) {
	cfg := DefaultConfig()

	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(810)
	b := testEvent("b", 815, "Rink B")

	forward, okForward := classifyPair(a, b, cfg)
	backward, okBackward := classifyPair(b, a, cfg)

	require.True(t, okForward)
	require.True(t, okBackward)
	assert.Equal(t, forward, backward)
}
