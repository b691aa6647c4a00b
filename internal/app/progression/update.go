package progression

import (
	"fmt"
	"math"
	"time"

	"github.com/soccorso-app/soccorso/internal/domain"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

// ChangeKind tags an update command. Changes are typed — the compiler
// rejects unknown paths instead of a dynamic key silently no-op-ing.
type ChangeKind int

const (
	// ChangeSetXPTotal sets the absolute spendable-XP total. The realized
	// delta is (total − current)/multiplier scaled back by the multiplier,
	// so "set absolute" still respects an active multiplier.
	ChangeSetXPTotal ChangeKind = iota
	// ChangeGainXP applies a relative XP delta (may be negative: spending).
	ChangeGainXP
	// ChangeCompleteModule marks a learning module done; the reward is
	// granted only on the first false→true transition.
	ChangeCompleteModule
	// ChangePatchStats adds a delta to one counter of a stats window.
	ChangePatchStats
)

// XPSource categorizes where a relative gain came from.
type XPSource string

const (
	SourceGain        XPSource = "xpGain"
	SourceAdditional  XPSource = "additionalXp"
	SourcePractice    XPSource = "practiceXpGain"
	SourceSurprise    XPSource = "surpriseExamXP"
	SourceGuardia     XPSource = "guardiaXp"
	SourceQuestClaim  XPSource = "questClaim"
	SourceExamReward  XPSource = "examReward"
	SourceMilestone   XPSource = "milestone"
	SourcePurchase    XPSource = "purchase"
)

// StatField enumerates the counters of a stats window.
type StatField int

const (
	StatModulesCompleted StatField = iota
	StatGuardiaPlayed
	StatCorrectAnswers
	StatGlossaryViews
)

// Change is one tagged update command.
type Change struct {
	Kind     ChangeKind
	Amount   int      // SetXPTotal: absolute total; GainXP/PatchStats: delta
	Source   XPSource // GainXP only, informational
	ModuleID string   // CompleteModule only
	Field    StatField
}

// Engine applies ordered change batches to progress records. It is pure
// computation: no I/O, clock injected, level table fixed at construction.
type Engine struct {
	levels []domain.LevelThreshold
}

// NewEngine builds an engine over a level table.
func NewEngine(levels []domain.LevelThreshold) *Engine {
	return &Engine{levels: levels}
}

// Apply runs every change, in slice order, against a single evolving draft
// — later changes see earlier changes' effects — and returns the new
// record plus derived events. The caller's record is never mutated; on any
// input error nothing is applied.
//
// Each change runs through four explicit stages: XP, level, stats windows,
// merge into the draft.
func (e *Engine) Apply(rec domain.ProgressRecord, changes []Change, multiplier float64, now time.Time) (domain.ProgressRecord, []domain.Event, error) {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return rec, nil, fmt.Errorf("%w: %v", domain.ErrBadMultiplier, multiplier)
	}

	draft := rec.Clone()
	var events []domain.Event
	levelUpFired := false

	for i, ch := range changes {
		realized, patch, err := e.realize(&draft, ch, multiplier)
		if err != nil {
			return rec, nil, fmt.Errorf("change %d: %w", i, err)
		}

		// Stage 1: XP. Spendable balance moves both ways; only positive
		// realized gains raise the lifetime high-water mark and the weekly
		// counter.
		draft.XP += realized
		if realized > 0 {
			draft.LifetimeXP += realized
			draft.WeeklyXP += realized
		}

		// Stage 2: level. One level-up event per Apply even when several
		// thresholds are crossed at once; the level itself always comes
		// from the table lookup, never from +1.
		if newLevel := ComputeLevel(e.levels, draft.LifetimeXP); newLevel > draft.Level {
			draft.Level = newLevel
			if !levelUpFired {
				events = append(events, domain.Event{Type: domain.EventLevelUp, Level: newLevel})
				levelUpFired = true
			}
			// Level milestone badges, at most once each.
			for _, lvl := range catalog.LevelMilestones {
				if draft.Level < lvl {
					continue
				}
				badge := catalog.LevelBadgeID(lvl)
				if badge == "" || draft.HasBadge(badge) {
					continue
				}
				draft.Badges = append(draft.Badges, badge)
				events = append(events, domain.Event{Type: domain.EventBadgeEarned, BadgeID: badge, Level: lvl})
			}
		}

		// Stage 3: stats windows. Roll a stale window forward before
		// counting anything into it.
		if realized > 0 || patch != nil {
			rollWindows(&draft, now)
		}
		if realized > 0 {
			draft.DailyStats.XPEarned += realized
			draft.WeeklyStats.XPEarned += realized
		}
		// Stage 4: merge the non-XP effect of this change into the draft.
		if patch != nil {
			patch(&draft)
		}
	}

	return draft, events, nil
}

// realize computes the XP delta of a change (already multiplied) and a
// deferred patch for its non-XP effect.
func (e *Engine) realize(draft *domain.ProgressRecord, ch Change, multiplier float64) (int, func(*domain.ProgressRecord), error) {
	switch ch.Kind {
	case ChangeSetXPTotal:
		// delta = (total − current)/multiplier, realized = delta*multiplier:
		// the multiplier cancels and the balance lands exactly on Amount.
		return ch.Amount - draft.XP, nil, nil

	case ChangeGainXP:
		return int(math.Round(float64(ch.Amount) * multiplier)), nil, nil

	case ChangeCompleteModule:
		if ch.ModuleID == "" {
			return 0, nil, domain.ErrMissingModuleID
		}
		if draft.Modules[ch.ModuleID] {
			return 0, nil, nil // Already completed — no double reward
		}
		id := ch.ModuleID
		patch := func(d *domain.ProgressRecord) {
			d.Modules[id] = true
			d.DailyStats.ModulesCompleted++
			d.WeeklyStats.ModulesCompleted++
		}
		return int(math.Round(float64(catalog.ModuleRewardXP) * multiplier)), patch, nil

	case ChangePatchStats:
		field := ch.Field
		delta := ch.Amount
		var patch func(*domain.ProgressRecord)
		switch field {
		case StatModulesCompleted:
			patch = func(d *domain.ProgressRecord) { d.DailyStats.ModulesCompleted += delta; d.WeeklyStats.ModulesCompleted += delta }
		case StatGuardiaPlayed:
			patch = func(d *domain.ProgressRecord) { d.DailyStats.GuardiaPlayed += delta; d.WeeklyStats.GuardiaPlayed += delta }
		case StatCorrectAnswers:
			patch = func(d *domain.ProgressRecord) { d.DailyStats.CorrectAnswers += delta; d.WeeklyStats.CorrectAnswers += delta }
		case StatGlossaryViews:
			patch = func(d *domain.ProgressRecord) { d.DailyStats.GlossaryViews += delta; d.WeeklyStats.GlossaryViews += delta }
		default:
			return 0, nil, fmt.Errorf("%w: %d", domain.ErrUnknownStatField, field)
		}
		return 0, patch, nil

	default:
		return 0, nil, fmt.Errorf("%w: %d", domain.ErrUnknownChange, ch.Kind)
	}
}

// rollWindows resets any stats window whose stored date is not today.
// The weekly window uses the same date-mismatch rule as the daily one;
// the Monday archive of weeklyXp happens in ApplyLogin.
func rollWindows(draft *domain.ProgressRecord, now time.Time) {
	today := DateKey(now)
	if draft.DailyStats.Date != today {
		draft.DailyStats = domain.StatsWindow{Date: today}
		draft.DailyQuests.Claimed = false
	}
	if draft.WeeklyStats.Date == "" {
		draft.WeeklyStats.Date = today
	}
}
