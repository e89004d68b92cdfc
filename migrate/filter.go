package migrate

import (
	"fmt"
	"time"
)

// DefaultMacroCutoff is the oldest macro-event date kept by a migration.
const DefaultMacroCutoff = "2024-01-01"

// Cutoff is an ISO 8601 date (YYYY-MM-DD). A record dated strictly before
// it is rejected; ISO dates order correctly as strings. The zero value
// rejects nothing.
type Cutoff string

// ParseCutoff validates s as a YYYY-MM-DD date. An empty string yields the
// disabled zero Cutoff.
func ParseCutoff(s string) (Cutoff, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("cutoff %q: want YYYY-MM-DD: %w", s, err)
	}
	return Cutoff(s), nil
}

func (c Cutoff) Enabled() bool {
	return c != ""
}

// Rejects reports whether a record dated date falls before the cutoff.
func (c Cutoff) Rejects(date string) bool {
	return c.Enabled() && date < string(c)
}
