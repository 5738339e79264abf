package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.Local)

func TestEvaluateEmptyAndSingle(t *testing.T) {
	cfg := DefaultConfig()

	result := Evaluate(nil, evalNow, cfg)
	assert.Empty(t, result.Risks)
	assert.Equal(t, 0, result.TotalRisks)
	assert.Equal(t, 0, result.CountBySeverity[SeverityError])

	result = Evaluate([]Event{testEvent("a", 600, "Rink A")}, evalNow, cfg)
	assert.Empty(t, result.Risks)
}

func TestEvaluateDifferentDatesNeverConflict(t *testing.T) {
	a := testEvent("a", 600, "Rink A")
	b := testEvent("b", 600, "Rink A")
	b.Date = "2030-01-06"

	result := Evaluate([]Event{a, b}, evalNow, DefaultConfig())

	assert.Empty(t, result.Risks)
}

func TestEvaluateExcludesPastDates(t *testing.T) {
	past := testEvent("past", 600, "Rink A")
	past.Date = "2029-12-28"
	conflicting := testEvent("now", 600, "Rink A")
	conflicting.Date = "2029-12-28"

	result := Evaluate([]Event{past, conflicting}, evalNow, DefaultConfig())

	assert.Empty(t, result.Risks)
}

func TestEvaluateTodayStillEvaluated(t *testing.T) {
	a := testEvent("a", 600, "Rink A")
	a.Date = Day(evalNow)
	b := testEvent("b", 630, "Rink A")
	b.Date = Day(evalNow)

	result := Evaluate([]Event{a, b}, evalNow, DefaultConfig())

	require.Len(t, result.Risks, 1)
	assert.Equal(t, RiskHardTimeConflict, result.Risks[0].Type)
}

func TestEvaluateRiskShape(t *testing.T) {
	a := testEvent("a", 600, "Rink A")
	b := testEvent("b", 630, "Rink A")

	result := Evaluate([]Event{a, b}, evalNow, DefaultConfig())

	require.Len(t, result.Risks, 1)
	risk := result.Risks[0]
	assert.NotEmpty(t, risk.ID)
	assert.Equal(t, SeverityError, risk.Severity)
	assert.Equal(t, evalNow, risk.DetectedAt)
	assert.NotEmpty(t, risk.Explanation)
	assert.NotEmpty(t, risk.Suggestion)
	require.Len(t, risk.AffectedEvents, 2)
	assert.Equal(t, "a", risk.AffectedEvents[0].ID)
	assert.Equal(t, "b", risk.AffectedEvents[1].ID)
	assert.Equal(t, 1, result.CountBySeverity[SeverityError])
	assert.Equal(t, 0, result.CountBySeverity[SeverityWarning])
	assert.Equal(t, 1, result.TotalRisks)
}

func TestEvaluateDeduplicatesRepeatedPairs(t *testing.T) {
	a := testEvent("a", 600, "Rink A")
	b := testEvent("b", 630, "Rink A")

	// The same records fed twice, as happens when a caller regenerates its
	// list, must not double-report the pair or pair a copy with itself.
	result := Evaluate([]Event{a, b, a, b}, evalNow, DefaultConfig())

	require.Equal(t, 1, result.TotalRisks)
	require.Len(t, result.Risks[0].AffectedEvents, 2)
	assert.Equal(t, "a", result.Risks[0].AffectedEvents[0].ID)
	assert.Equal(t, "b", result.Risks[0].AffectedEvents[1].ID)
}

func TestEvaluateDuplicateIDNeverSelfConflicts(t *testing.T) {
	a := testEvent("a", 600, "Rink A")

	result := Evaluate([]Event{a, a, a}, evalNow, DefaultConfig())

	assert.Empty(t, result.Risks)
	assert.Equal(t, 0, result.TotalRisks)
}

func TestRiskSeverityMapping(t *testing.T) {
	assert.Equal(t, SeverityError, RiskHardTimeConflict.RiskSeverity())
	assert.Equal(t, SeverityWarning, RiskCloseStart.RiskSeverity())
	assert.Equal(t, SeverityWarning, RiskSameDayTravel.RiskSeverity())
}

func TestEvaluateTravelRiskIsWarning(t *testing.T) {
	a := testEvent("a", 600, "Rink A")
	a.EndMinutes = minutesPtr(810)
	b := testEvent("b", 815, "Rink B")

	result := Evaluate([]Event{a, b}, evalNow, DefaultConfig())

	require.Len(t, result.Risks, 1)
	assert.Equal(t, RiskSameDayTravel, result.Risks[0].Type)
	assert.Equal(t, SeverityWarning, result.Risks[0].Severity)
	assert.Equal(t, 1, result.CountBySeverity[SeverityWarning])
	assert.Equal(t, 0, result.CountBySeverity[SeverityInfo])
}

func TestEvaluateSeveritySort(t *testing.T) {
	// Travel-risk pair on one day, hard conflict on another; the error must
	// sort first regardless of input order.
	travelA := testEvent("ta", 600, "Rink A")
	travelA.EndMinutes = minutesPtr(810)
	travelB := testEvent("tb", 815, "Rink B")

	hardA := testEvent("ha", 600, "Rink A")
	hardA.Date = "2030-01-07"
	hardB := testEvent("hb", 630, "Rink A")
	hardB.Date = "2030-01-07"

	result := Evaluate([]Event{travelA, travelB, hardA, hardB}, evalNow, DefaultConfig())

	require.Len(t, result.Risks, 2)
	assert.Equal(t, RiskHardTimeConflict, result.Risks[0].Type)
	assert.Equal(t, RiskSameDayTravel, result.Risks[1].Type)
	assert.Equal(t, 1, result.CountBySeverity[SeverityError])
	assert.Equal(t, 1, result.CountBySeverity[SeverityWarning])
	assert.Equal(t, 0, result.CountBySeverity[SeverityInfo])
}

func TestEvaluateIdempotent(t *testing.T) {
	events := []Event{
		testEvent("a", 600, "Rink A"),
		testEvent("b", 630, "Rink A"),
		testEvent("c", 900, "Rink B"),
		testEvent("d", 960, "Rink C"),
	}

	first := Evaluate(events, evalNow, DefaultConfig())
	second := Evaluate(events, evalNow, DefaultConfig())

	require.Equal(t, len(first.Risks), len(second.Risks))
	for i := range first.Risks {
		// IDs are minted per run; everything else must agree, in order.
		assert.Equal(t, first.Risks[i].Type, second.Risks[i].Type)
		assert.Equal(t, first.Risks[i].Severity, second.Risks[i].Severity)
		assert.Equal(t, first.Risks[i].AffectedEvents, second.Risks[i].AffectedEvents)
		assert.Equal(t, first.Risks[i].Explanation, second.Risks[i].Explanation)
	}
}

func TestEvaluateMalformedEventsNeverAppear(t *testing.T) {
	inputs := []GameInput{
		{ID: "good1", Date: "2030-01-05", Time: "10:00"},
		{ID: "good2", Date: "2030-01-05", Time: "10:30"},
		{ID: "broken", Date: "2030-01-05", Time: "not a time"},
	}

	result := Evaluate(NormalizeGames(inputs), evalNow, DefaultConfig())

	for _, risk := range result.Risks {
		for _, ref := range risk.AffectedEvents {
			assert.NotEqual(t, "broken", ref.ID)
		}
	}
	require.Len(t, result.Risks, 1)
}
