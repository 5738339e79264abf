package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Evaluate runs the full risk pipeline: past dates are dropped, the
// remainder is bucketed by calendar date, every unordered same-day pair is
// classified, and the surviving risks are deduplicated and severity-sorted.
// Malformed input never reaches this function (see NormalizeGame); empty and
// single-event schedules yield an empty risk list.
//
// Daily buckets are small for any realistic team schedule, so the per-day
// pairwise scan stays O(n²) without a sweep.
func Evaluate(events []Event, now time.Time, cfg Config) Evaluation {
	today := Day(now)

	byDay := make(map[string][]Event)
	for _, event := range events {
		if event.Date < today {
			continue
		}
		byDay[event.Date] = append(byDay[event.Date], event)
	}

	seen := make(map[string]struct{})
	var risks []Risk
	for _, bucket := range byDay {
		if len(bucket) < 2 {
			continue
		}
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				// Duplicate records for the same game share an ID and
				// must not be classified against each other.
				if bucket[i].ID == bucket[j].ID {
					continue
				}
				riskType, ok := classifyPair(bucket[i], bucket[j], cfg)
				if !ok {
					continue
				}
				key := dedupKey(riskType, bucket[i].ID, bucket[j].ID)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				risks = append(risks, newRisk(riskType, bucket[i], bucket[j], now, cfg))
			}
		}
	}

	sortRisks(risks)

	counts := map[Severity]int{SeverityError: 0, SeverityWarning: 0, SeverityInfo: 0}
	for _, risk := range risks {
		counts[risk.Severity]++
	}

	if risks == nil {
		risks = []Risk{}
	}
	return Evaluation{
		Risks:           risks,
		TotalRisks:      len(risks),
		CountBySeverity: counts,
		EvaluatedAt:     now,
	}
}

func dedupKey(riskType RiskType, idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return string(riskType) + "|" + idA + "|" + idB
}

func newRisk(riskType RiskType, a, b Event, now time.Time, cfg Config) Risk {
	if b.StartMinutes < a.StartMinutes {
		a, b = b, a
	}
	return Risk{
		ID:       uuid.NewString(),
		Type:     riskType,
		Severity: riskType.RiskSeverity(),
		AffectedEvents: []EventRef{
			{ID: a.ID, DisplayName: a.DisplayName, Date: a.Date, StartMinutes: a.StartMinutes},
			{ID: b.ID, DisplayName: b.DisplayName, Date: b.Date, StartMinutes: b.StartMinutes},
		},
		Explanation: explanation(riskType, a, b, cfg),
		Suggestion:  suggestion(riskType, cfg),
		DetectedAt:  now,
	}
}

// explanation builds the human-readable description for a risk. a starts no
// later than b.
func explanation(riskType RiskType, a, b Event, cfg Config) string {
	switch riskType {
	case RiskHardTimeConflict:
		return fmt.Sprintf("%s at %s overlaps %s at %s on %s",
			a.DisplayName, FormatClock(a.StartMinutes),
			b.DisplayName, FormatClock(b.StartMinutes), a.Date)
	case RiskCloseStart:
		return fmt.Sprintf("%s at %s and %s at %s on %s start within %s of each other",
			a.DisplayName, FormatClock(a.StartMinutes),
			b.DisplayName, FormatClock(b.StartMinutes), a.Date,
			formatDuration(cfg.CloseStartThreshold))
	case RiskSameDayTravel:
		_, aEnd := effectiveInterval(a, cfg)
		gap := b.StartMinutes - aEnd
		return fmt.Sprintf("Only %d minutes between %s at %s and %s at %s on %s",
			gap, a.DisplayName, venueLabel(a), b.DisplayName, venueLabel(b), a.Date)
	}
	return ""
}

func suggestion(riskType RiskType, cfg Config) string {
	switch riskType {
	case RiskHardTimeConflict:
		return "Reschedule one of these games to a different time slot."
	case RiskCloseStart:
		return "Leave more time between start times, or confirm back-to-back games are intended."
	case RiskSameDayTravel:
		return fmt.Sprintf("Allow at least %d minutes to travel between rinks.",
			int(cfg.TravelTimeThreshold.Minutes()))
	}
	return ""
}

func venueLabel(e Event) string {
	parts := make([]string, 0, 2)
	if e.Rink != "" {
		parts = append(parts, e.Rink)
	}
	if e.City != "" {
		parts = append(parts, e.City)
	}
	if len(parts) == 0 {
		return "an unknown rink"
	}
	return strings.Join(parts, ", ")
}

func formatDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}

var severityRank = map[Severity]int{
	SeverityError:   0,
	SeverityWarning: 1,
	SeverityInfo:    2,
}

// sortRisks orders by severity (error first), then risk type, then affected
// event ids, so repeated evaluations of the same schedule agree exactly.
func sortRisks(risks []Risk) {
	sort.SliceStable(risks, func(i, j int) bool {
		if severityRank[risks[i].Severity] != severityRank[risks[j].Severity] {
			return severityRank[risks[i].Severity] < severityRank[risks[j].Severity]
		}
		if risks[i].Type != risks[j].Type {
			return risks[i].Type < risks[j].Type
		}
		return pairKey(risks[i]) < pairKey(risks[j])
	})
}

func pairKey(r Risk) string {
	ids := make([]string, 0, len(r.AffectedEvents))
	for _, ref := range r.AffectedEvents {
		ids = append(ids, ref.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|") + "|" + r.AffectedEvents[0].Date
}
