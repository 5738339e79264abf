package schedule

import "time"

type EventType string

const (
	TypeGame       EventType = "game"
	TypeTournament EventType = "tournament"
)

// Event is the canonical form a game or tournament takes inside the risk
// detector. Date is a local calendar day (YYYY-MM-DD); times are minutes
// since local midnight. Records whose date or start time cannot be
// normalized never become Events.
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	DisplayName  string    `json:"displayName"`
	Date         string    `json:"date"`
	StartMinutes int       `json:"startTimeMinutes"`
	EndMinutes   *int      `json:"endTimeMinutes,omitempty"`
	Rink         string    `json:"venue,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Country      string    `json:"country,omitempty"`
}

// venueKey identifies a venue for travel-risk purposes. Comparison is exact
// string match on the rink/city/state triple.
func (e Event) venueKey() string {
	return e.Rink + "|" + e.City + "|" + e.State
}

type RiskType string

const (
	RiskHardTimeConflict RiskType = "HARD_TIME_CONFLICT"
	RiskCloseStart       RiskType = "CLOSE_START_WARNING"
	RiskSameDayTravel    RiskType = "SAME_DAY_TRAVEL_RISK"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RiskSeverity maps a risk type to its fixed severity.
func (t RiskType) RiskSeverity() Severity {
	switch t {
	case RiskHardTimeConflict:
		return SeverityError
	case RiskCloseStart, RiskSameDayTravel:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// EventRef is the slice of an Event carried inside a Risk.
type EventRef struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Date         string `json:"date"`
	StartMinutes int    `json:"startTimeMinutes"`
}

// Risk is a value object: minted fresh on every evaluation, never persisted
// or mutated. ID and DetectedAt are opaque and carry no identity across runs.
type Risk struct {
	ID             string     `json:"id"`
	Type           RiskType   `json:"riskType"`
	Severity       Severity   `json:"severity"`
	AffectedEvents []EventRef `json:"affectedEvents"`
	Explanation    string     `json:"explanation"`
	Suggestion     string     `json:"suggestion"`
	DetectedAt     time.Time  `json:"detectedAt"`
}

// Evaluation is the aggregate result of a full schedule scan.
type Evaluation struct {
	Risks           []Risk           `json:"risks"`
	TotalRisks      int              `json:"totalRisks"`
	CountBySeverity map[Severity]int `json:"countBySeverity"`
	EvaluatedAt     time.Time        `json:"evaluatedAt"`
}

// Config holds the evaluator thresholds. It is read-only at runtime. The
// inline form validator uses its own flat spacing rule and deliberately does
// not consult these values.
type Config struct {
	CloseStartThreshold time.Duration
	AssumedGameDuration time.Duration
	TravelTimeThreshold time.Duration
}

func DefaultConfig() Config {
	return Config{
		CloseStartThreshold: 2 * time.Hour,
		AssumedGameDuration: 90 * time.Minute,
		TravelTimeThreshold: 30 * time.Minute,
	}
}
