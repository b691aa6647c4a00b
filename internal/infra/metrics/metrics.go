// Package metrics provides Prometheus metrics for the progression engine:
// XP flow, level-ups, exams, quests, streaks, and store health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── XP ─────────────────────────────────────────────────────────────────────

// XPGranted tracks positive XP deltas by source.
var XPGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "xp_granted_total",
	Help:      "Total XP granted, by source.",
}, []string{"source"})

// XPSpent tracks XP debits (purchases, powerups).
var XPSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "xp_spent_total",
	Help:      "Total XP spent.",
})

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// ─── Exams ──────────────────────────────────────────────────────────────────

// ExamsGraded tracks finished exams by result.
var ExamsGraded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "exams_graded_total",
	Help:      "Total graded exams, by result (passed/failed/voided).",
}, []string{"result"})

// PowerupsActivated tracks in-exam aid activations.
var PowerupsActivated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "powerups_activated_total",
	Help:      "Total powerup activations, by id.",
}, []string{"powerup"})

// ─── Quests & Streaks ───────────────────────────────────────────────────────

// QuestsClaimed tracks roster claims by window.
var QuestsClaimed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "quests_claimed_total",
	Help:      "Total quest roster claims, by window.",
}, []string{"window"})

// StreakFreezes tracks consumed streak-freeze charges.
var StreakFreezes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "streak_freezes_used_total",
	Help:      "Total streak-freeze charges consumed.",
})

// StreakDays reports the streak length after the most recent counted
// login.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "soccorso",
	Name:      "streak_days",
	Help:      "Login streak length after the last counted login.",
})

// ─── Store ──────────────────────────────────────────────────────────────────

// StoreWriteFailures tracks failed persistence writes (retried by callers).
var StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "soccorso",
	Name:      "store_write_failures_total",
	Help:      "Total failed progress-record writes.",
})
