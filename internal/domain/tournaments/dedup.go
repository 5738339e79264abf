package tournaments

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// collapseSpaces matches two or more consecutive whitespace characters.
var collapseSpaces = regexp.MustCompile(`\s{2,}`)

// DedupCandidate holds the fields a tournament listing is deduplicated on.
// Discovery sources re-list the same tournament run after run; the hash keys
// the upsert so repeats update in place instead of piling up.
type DedupCandidate struct {
	Name      string
	VenueKey  string
	StartDate string
}

// NormalizeVenueKey produces a canonical venue key for dedup hashing:
// lowercase, trimmed, internal whitespace collapsed, fields joined as
// rink|city|state. Listings that spell the rink with stray spacing or casing
// still collide.
func NormalizeVenueKey(rink, city, state string) string {
	parts := []string{rink, city, state}
	for i, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		parts[i] = collapseSpaces.ReplaceAllString(part, " ")
	}
	return strings.Join(parts, "|")
}

// BuildDedupHash computes a deterministic SHA-256 over "name|venue|startDate"
// with the name normalized the same way as the venue key.
func BuildDedupHash(candidate DedupCandidate) string {
	name := strings.ToLower(strings.TrimSpace(candidate.Name))
	name = collapseSpaces.ReplaceAllString(name, " ")
	venue := strings.TrimSpace(candidate.VenueKey)
	start := strings.TrimSpace(candidate.StartDate)
	payload := strings.Join([]string{name, venue, start}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
