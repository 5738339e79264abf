package tournaments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVenueKey(t *testing.T) {
	key := NormalizeVenueKey("  Central   Ice  Rink ", "Springfield", "MA")

	assert.Equal(t, "central ice rink|springfield|ma", key)
	assert.Equal(t, key, NormalizeVenueKey("CENTRAL ICE RINK", " springfield ", "ma"))
}

func TestBuildDedupHashDeterministic(t *testing.T) {
	candidate := DedupCandidate{
		Name:      "Winter Classic Invitational",
		VenueKey:  NormalizeVenueKey("Central Rink", "Springfield", "MA"),
		StartDate: "2026-01-16",
	}

	first := BuildDedupHash(candidate)
	second := BuildDedupHash(candidate)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestBuildDedupHashNormalizesName(t *testing.T) {
	base := DedupCandidate{Name: "Winter Classic", VenueKey: "rink|city|st", StartDate: "2026-01-16"}
	shouty := base
	shouty.Name = "  WINTER   CLASSIC  "

	assert.Equal(t, BuildDedupHash(base), BuildDedupHash(shouty))
}

func TestBuildDedupHashDistinguishes(t *testing.T) {
	base := DedupCandidate{Name: "Winter Classic", VenueKey: "rink|city|st", StartDate: "2026-01-16"}

	differentName := base
	differentName.Name = "Spring Shootout"
	assert.NotEqual(t, BuildDedupHash(base), BuildDedupHash(differentName))

	differentDate := base
	differentDate.StartDate = "2026-02-16"
	assert.NotEqual(t, BuildDedupHash(base), BuildDedupHash(differentDate))

	differentVenue := base
	differentVenue.VenueKey = "other|city|st"
	assert.NotEqual(t, BuildDedupHash(base), BuildDedupHash(differentVenue))
}
