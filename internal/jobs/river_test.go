package jobs

import (
	"testing"
	"time"

	"github.com/riverqueue/river/rivertype"
	"github.com/rinkline/server/internal/config"
)

func TestNewRetryPolicy_Defaults(t *testing.T) {
	policy := NewRetryPolicy(config.JobsConfig{})

	if policy.Default.MaxAttempts != DiscoveryMaxAttempts {
		t.Errorf("Default.MaxAttempts = %d, want %d", policy.Default.MaxAttempts, DiscoveryMaxAttempts)
	}

	tests := []struct {
		kind                string
		expectedMaxAttempts int
		expectedBaseDelay   time.Duration
		expectedMaxDelay    time.Duration
	}{
		{
			kind:                JobKindTournamentDiscovery,
			expectedMaxAttempts: DiscoveryMaxAttempts,
			expectedBaseDelay:   1 * time.Minute,
			expectedMaxDelay:    1 * time.Hour,
		},
		{
			kind:                JobKindRiskDigest,
			expectedMaxAttempts: DigestMaxAttempts,
			expectedBaseDelay:   10 * time.Minute,
			expectedMaxDelay:    2 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg, ok := policy.ByKind[tt.kind]
			if !ok {
				t.Fatalf("kind %s not found in ByKind map", tt.kind)
			}
			if cfg.MaxAttempts != tt.expectedMaxAttempts {
				t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, tt.expectedMaxAttempts)
			}
			if cfg.BaseDelay != tt.expectedBaseDelay {
				t.Errorf("BaseDelay = %v, want %v", cfg.BaseDelay, tt.expectedBaseDelay)
			}
			if cfg.MaxDelay != tt.expectedMaxDelay {
				t.Errorf("MaxDelay = %v, want %v", cfg.MaxDelay, tt.expectedMaxDelay)
			}
		})
	}
}

func TestNewRetryPolicy_ConfigOverrides(t *testing.T) {
	policy := NewRetryPolicy(config.JobsConfig{DiscoveryRetries: 7, DigestRetries: 4})

	if got := policy.ByKind[JobKindTournamentDiscovery].MaxAttempts; got != 7 {
		t.Errorf("discovery MaxAttempts = %d, want 7", got)
	}
	if got := policy.ByKind[JobKindRiskDigest].MaxAttempts; got != 4 {
		t.Errorf("digest MaxAttempts = %d, want 4", got)
	}
}

func TestRetryPolicy_NextRetryBacksOffExponentially(t *testing.T) {
	policy := NewRetryPolicy(config.JobsConfig{})
	attemptedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		attempt       int
		expectedDelay time.Duration
	}{
		{name: "first attempt", attempt: 1, expectedDelay: 1 * time.Minute},
		{name: "second attempt", attempt: 2, expectedDelay: 2 * time.Minute},
		{name: "third attempt", attempt: 3, expectedDelay: 4 * time.Minute},
		{name: "capped at max delay", attempt: 10, expectedDelay: 1 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &rivertype.JobRow{
				Kind:        JobKindTournamentDiscovery,
				Attempt:     tt.attempt,
				AttemptedAt: &attemptedAt,
			}

			next := policy.NextRetry(job)
			if got := next.Sub(attemptedAt); got != tt.expectedDelay {
				t.Errorf("delay = %v, want %v", got, tt.expectedDelay)
			}
		})
	}
}

func TestRetryPolicy_UnknownKindUsesDefault(t *testing.T) {
	policy := NewRetryPolicy(config.JobsConfig{})
	attemptedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	job := &rivertype.JobRow{
		Kind:        "something_else",
		Attempt:     1,
		AttemptedAt: &attemptedAt,
	}

	next := policy.NextRetry(job)
	if got := next.Sub(attemptedAt); got != 30*time.Second {
		t.Errorf("delay = %v, want 30s", got)
	}
}
