// Package progression implements the player progression engine: the
// deterministic daily selector, streak tracking, quest rosters, exam
// grading, and the ordered update pipeline that turns raw changes into a
// new immutable progress record.
package progression

import (
	"time"

	"github.com/soccorso-app/soccorso/internal/domain"
)

// hashMultiplier spreads the compact date seed across the pool. Knuth's
// multiplicative-hash constant; any large odd constant works, this one is
// frozen because every player must compute the same index forever.
const hashMultiplier = 2654435761

// DateKey formats a time as the canonical calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// DateSeed derives the integer seed for a calendar date: year*10000 +
// month*100 + day. Compact, human-readable in logs, unique per day.
func DateSeed(t time.Time) int64 {
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// CharSeed derives a seed from a date key by summing its character codes.
// Used for the quest-roster shuffle so daily and weekly rosters draw from
// a different sequence than the scenario pick.
func CharSeed(key string) int64 {
	var sum int64
	for _, c := range key {
		sum += int64(c)
	}
	return sum
}

// Select maps a calendar date to a stable index in [0, poolSize).
// Pure and process-independent: same (date, poolSize) always yields the
// same index for every player, with no external randomness.
func Select(t time.Time, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	idx := (DateSeed(t) * hashMultiplier) % int64(poolSize)
	if idx < 0 {
		idx = -idx
	}
	return int(idx)
}
