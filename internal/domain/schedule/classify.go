package schedule

// classifyPair applies the risk rules to two events sharing a calendar date.
// Rules are mutually exclusive by construction: the first match wins and
// later rules are skipped for the pair.
//
//  1. Hard conflict: effective intervals overlap. Intervals are half-open,
//     so touching end-to-start is not a conflict.
//  2. Close start: start times differ by strictly less than the threshold.
//  3. Travel risk: different venue triple and a positive gap between the
//     earlier event's end and the later event's start that is strictly
//     under the travel threshold.
func classifyPair(a, b Event, cfg Config) (RiskType, bool) {
	aStart, aEnd := effectiveInterval(a, cfg)
	bStart, bEnd := effectiveInterval(b, cfg)

	if aStart < bEnd && bStart < aEnd {
		return RiskHardTimeConflict, true
	}

	if absInt(aStart-bStart) < int(cfg.CloseStartThreshold.Minutes()) {
		return RiskCloseStart, true
	}

	if a.venueKey() != b.venueKey() {
		earlierEnd, laterStart := aEnd, bStart
		if bStart < aStart {
			earlierEnd, laterStart = bEnd, aStart
		}
		gap := laterStart - earlierEnd
		if gap > 0 && gap < int(cfg.TravelTimeThreshold.Minutes()) {
			return RiskSameDayTravel, true
		}
	}

	return "", false
}

// effectiveInterval returns the half-open [start, end) interval for an
// event, assuming the configured game duration when no end time is known.
func effectiveInterval(e Event, cfg Config) (int, int) {
	if e.EndMinutes != nil {
		return e.StartMinutes, *e.EndMinutes
	}
	return e.StartMinutes, e.StartMinutes + int(cfg.AssumedGameDuration.Minutes())
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
