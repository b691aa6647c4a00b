package progression

import "github.com/soccorso-app/soccorso/internal/domain"

// ComputeLevel returns the level for a lifetime-XP amount: the highest
// table row whose MinXP does not exceed xp. The table is sorted by MinXP,
// so the walk stops at the first row out of reach.
func ComputeLevel(table []domain.LevelThreshold, lifetimeXP int) int {
	level := 1
	for _, row := range table {
		if lifetimeXP < row.MinXP {
			break
		}
		level = row.Level
	}
	return level
}
