package progression

import (
	"time"

	"github.com/soccorso-app/soccorso/internal/domain"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

// ApplyLogin advances the login streak for one calendar day and returns
// the updated record plus any derived events. Pure: the input record is
// not mutated.
//
// Branches, keyed on lastLoginDate:
//   - already today: no-op (a day counts once);
//   - yesterday: streak extends;
//   - older, with a streak_freeze charge and a live streak: the streak is
//     preserved, one charge is consumed, and a streak-saved event fires;
//   - otherwise: the streak resets to 1.
//
// lastLoginDate becomes today on every non-no-op branch.
func ApplyLogin(rec domain.ProgressRecord, now time.Time) (domain.ProgressRecord, []domain.Event) {
	today := DateKey(now)
	if rec.LastLoginDate == today {
		return rec, nil
	}

	draft := rec.Clone()
	var events []domain.Event

	// Weekly reset. The trigger is deliberately the login branch itself:
	// the reset runs only when this is the first login update of a Monday
	// (lastLoginDate != today). The source behaves this way and players'
	// records depend on it; see the boundary tests before changing it.
	if now.Weekday() == time.Monday {
		draft.LastWeekXP = draft.WeeklyXP
		draft.WeeklyXP = 0
		draft.WeeklyStats = domain.StatsWindow{Date: today}
		draft.WeeklyQuests.Claimed = false
		events = append(events, domain.Event{Type: domain.EventWeeklyReset})
	}

	yesterday := DateKey(now.AddDate(0, 0, -1))
	switch {
	case rec.LastLoginDate == yesterday:
		draft.Streak++
	case draft.Streak > 0 && draft.Inventory.Powerups[string(domain.PowerupStreakFreeze)] > 0:
		draft.Inventory.Powerups[string(domain.PowerupStreakFreeze)]--
		events = append(events, domain.Event{Type: domain.EventStreakSaved})
	default:
		draft.Streak = 1
	}
	draft.LastLoginDate = today

	// Milestone badges, at most once each (tracked via the badge set).
	for _, days := range catalog.StreakMilestones {
		if draft.Streak < days {
			continue
		}
		badge := catalog.StreakBadgeID(days)
		if badge == "" || draft.HasBadge(badge) {
			continue
		}
		draft.Badges = append(draft.Badges, badge)
		events = append(events, domain.Event{Type: domain.EventStreakMilestone, BadgeID: badge, Count: days})
	}

	return draft, events
}

// AdvancePerfectStreak updates the perfect-answer streak for one answer.
// A wrong answer resets the counter; a correct one increments it. When the
// new count lands exactly on a milestone threshold, that milestone is
// returned so the caller grants its bonus XP exactly once per crossing.
func AdvancePerfectStreak(current int, correct bool) (int, *domain.PerfectMilestone) {
	if !correct {
		return 0, nil
	}
	next := current + 1
	for _, m := range catalog.PerfectMilestones {
		if next == m.Count {
			hit := m
			return next, &hit
		}
	}
	return next, nil
}
