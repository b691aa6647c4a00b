package domain

// ─── Derived Events ─────────────────────────────────────────────────────────
// One input change can fan out into several derived effects (XP delta →
// level-up → badge → toast). The engine returns them as typed events so the
// presentation layer decides what to show; the engine never renders.

// EventType names a derived effect.
type EventType string

const (
	EventLevelUp          EventType = "level_up"
	EventBadgeEarned      EventType = "badge_earned"
	EventStreakSaved      EventType = "streak_saved"
	EventStreakMilestone  EventType = "streak_milestone"
	EventPerfectMilestone EventType = "perfect_milestone"
	EventQuestClaimed     EventType = "quest_claimed"
	EventWeeklyReset      EventType = "weekly_reset"
)

// Event is a single derived effect of an update.
type Event struct {
	Type    EventType `json:"type"`
	Level   int       `json:"level,omitempty"`   // EventLevelUp
	BadgeID string    `json:"badgeId,omitempty"` // Badge events
	XP      int       `json:"xp,omitempty"`      // Bonus XP attached to the event
	Name    string    `json:"name,omitempty"`    // Milestone display name
	Count   int       `json:"count,omitempty"`   // Milestone threshold crossed
}

// PerfectMilestone describes a perfect-answer streak threshold.
type PerfectMilestone struct {
	Count int    `json:"count"`
	XP    int    `json:"xp"`
	Name  string `json:"name"`
}
