package progression_test

import (
	"testing"
	"time"

	"github.com/soccorso-app/soccorso/internal/app/progression"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

// ═══════════════════════════════════════════════════════════════════════════
// Deterministic Selector Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestSelect_StableForSameDate(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	first := progression.Select(day, 37)
	for i := 0; i < 100; i++ {
		if got := progression.Select(day, 37); got != first {
			t.Fatalf("run %d: expected %d, got %d", i, first, got)
		}
	}
}

func TestSelect_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC)
	if progression.Select(morning, 12) != progression.Select(night, 12) {
		t.Error("same calendar date must select the same index regardless of time")
	}
}

func TestSelect_WithinRange(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		idx := progression.Select(base.AddDate(0, 0, i), len(catalog.Scenarios))
		if idx < 0 || idx >= len(catalog.Scenarios) {
			t.Fatalf("day %d: index %d out of [0,%d)", i, idx, len(catalog.Scenarios))
		}
	}
}

func TestSelect_EmptyPool(t *testing.T) {
	day := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if got := progression.Select(day, 0); got != 0 {
		t.Errorf("expected 0 for empty pool, got %d", got)
	}
	if got := progression.Select(day, -5); got != 0 {
		t.Errorf("expected 0 for negative pool, got %d", got)
	}
}

func TestSelect_VariesAcrossDays(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[progression.Select(base.AddDate(0, 0, i), 12)] = true
	}
	// Not a uniformity claim, just that the hash actually spreads.
	if len(seen) < 5 {
		t.Errorf("expected at least 5 distinct picks over 30 days, got %d", len(seen))
	}
}

func TestDateSeed_Encoding(t *testing.T) {
	day := time.Date(2024, 3, 5, 17, 45, 0, 0, time.UTC)
	if got := progression.DateSeed(day); got != 20240305 {
		t.Errorf("expected 20240305, got %d", got)
	}
}

func TestCharSeed_SumsCharacterCodes(t *testing.T) {
	// "ab" = 97 + 98
	if got := progression.CharSeed("ab"); got != 195 {
		t.Errorf("expected 195, got %d", got)
	}
	if progression.CharSeed("2024-03-05") == progression.CharSeed("2024-03-06") {
		t.Error("adjacent dates should not collide on this input")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Table Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestComputeLevel_TableWalk(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{149, 1},
		{150, 2},
		{399, 2},
		{400, 3},
		{15000, 12},
		{999999, 12},
	}
	for _, c := range cases {
		if got := progression.ComputeLevel(catalog.Levels, c.xp); got != c.want {
			t.Errorf("xp=%d: expected level %d, got %d", c.xp, c.want, got)
		}
	}
}

func TestComputeLevel_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 16000; xp += 50 {
		lvl := progression.ComputeLevel(catalog.Levels, xp)
		if lvl < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, lvl)
		}
		prev = lvl
	}
}

func TestComputeLevel_EmptyTable(t *testing.T) {
	if got := progression.ComputeLevel(nil, 5000); got != 1 {
		t.Errorf("expected level 1 with empty table, got %d", got)
	}
}
