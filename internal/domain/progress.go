// Package domain holds the progression engine's core types.
// Everything here is pure data — no infrastructure dependency — so the
// engine packages stay unit-testable against plain values.
package domain

import (
	"encoding/json"
	"fmt"
)

// DateLayout is the wire format for all calendar-date fields ("2006-01-02").
const DateLayout = "2006-01-02"

// ProgressRecord is the single per-player progress document.
// It is owned exclusively by one player and mutated only through the
// update engine; the store persists it as a JSON document with merge
// semantics.
type ProgressRecord struct {
	XP         int `json:"xp"`         // Spendable balance — debited by purchases and powerups
	LifetimeXP int `json:"lifetimeXp"` // Monotonic high-water mark, drives level
	WeeklyXP   int `json:"weeklyXp"`   // Reset every Monday
	LastWeekXP int `json:"lastWeekXp"` // Archived weeklyXp from the previous week
	Level      int `json:"level"`

	Streak        int    `json:"streak"`
	PerfectStreak int    `json:"perfectStreak"` // Consecutive correct answers, resets on any miss
	LastLoginDate string `json:"lastLoginDate"` // DateLayout, empty before first login

	Badges    []string  `json:"badges"` // Append-only
	Inventory Inventory `json:"inventory"`

	DailyStats  StatsWindow `json:"dailyStats"`
	WeeklyStats StatsWindow `json:"weeklyStats"`

	DailyQuests  QuestClaim `json:"dailyQuests"`
	WeeklyQuests QuestClaim `json:"weeklyQuests"`

	ExamAttempts []ExamAttempt `json:"examAttempts"` // Append-only history

	// Spaced-practice bookkeeping.
	FailedQuestions   []string `json:"failedQuestions"`
	MasteredQuestions []string `json:"masteredQuestions"`

	// Completion flag per learning module. A module grants its reward only
	// on the first false→true transition.
	Modules map[string]bool `json:"modules"`
}

// StatsWindow aggregates activity counters for one calendar window.
// The window rolls (all counters back to zero) whenever Date ≠ today.
type StatsWindow struct {
	Date             string `json:"date"`
	ModulesCompleted int    `json:"modulesCompleted"`
	XPEarned         int    `json:"xpEarned"`
	GuardiaPlayed    int    `json:"guardiaPlayed"`
	CorrectAnswers   int    `json:"correctAnswers"`
	GlossaryViews    int    `json:"glossaryViews"`
}

// QuestClaim tracks whether the roster reward for a window was collected.
type QuestClaim struct {
	Claimed bool `json:"claimed"`
}

// Inventory holds purchased cosmetics and consumable powerups.
type Inventory struct {
	Avatars  []string       `json:"avatars"`
	Themes   []string       `json:"themes"`
	Titles   []string       `json:"titles"`
	Powerups map[string]int `json:"powerups"` // id → remaining charges
}

// ExamAttempt is one finished exam, appended to the record's history.
// Answers are keyed by the question bank's global index, not the
// session-local index, so cross-session analytics line up.
type ExamAttempt struct {
	Score   int         `json:"score"` // Raw correct count
	Grade   float64     `json:"grade"` // 0–10 after the progressive cap
	Passed  bool        `json:"passed"`
	Answers map[int]int `json:"answers"` // Global question index → chosen option
	Type    ExamType    `json:"type"`
	Date    string      `json:"date"` // DateLayout
}

// NewProgressRecord returns a fresh record for a first-time player.
func NewProgressRecord() ProgressRecord {
	return ProgressRecord{
		Level: 1,
		Inventory: Inventory{
			Powerups: map[string]int{},
		},
		Modules: map[string]bool{},
	}
}

// HasBadge reports whether the badge was already earned.
func (r ProgressRecord) HasBadge(id string) bool {
	for _, b := range r.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The update engine works on clones so the
// caller's record is never mutated mid-apply.
func (r ProgressRecord) Clone() ProgressRecord {
	c := r
	c.Badges = append([]string(nil), r.Badges...)
	c.FailedQuestions = append([]string(nil), r.FailedQuestions...)
	c.MasteredQuestions = append([]string(nil), r.MasteredQuestions...)
	c.Inventory.Avatars = append([]string(nil), r.Inventory.Avatars...)
	c.Inventory.Themes = append([]string(nil), r.Inventory.Themes...)
	c.Inventory.Titles = append([]string(nil), r.Inventory.Titles...)
	c.Inventory.Powerups = make(map[string]int, len(r.Inventory.Powerups))
	for k, v := range r.Inventory.Powerups {
		c.Inventory.Powerups[k] = v
	}
	c.Modules = make(map[string]bool, len(r.Modules))
	for k, v := range r.Modules {
		c.Modules[k] = v
	}
	c.ExamAttempts = make([]ExamAttempt, len(r.ExamAttempts))
	for i, a := range r.ExamAttempts {
		ca := a
		ca.Answers = make(map[int]int, len(a.Answers))
		for q, o := range a.Answers {
			ca.Answers[q] = o
		}
		c.ExamAttempts[i] = ca
	}
	return c
}

// ToDoc converts the record to the generic document shape the store
// persists (JSON round-trip keeps field names authoritative in one place).
func (r ProgressRecord) ToDoc() (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode record doc: %w", err)
	}
	return doc, nil
}

// RecordFromDoc converts a stored document back into a typed record.
func RecordFromDoc(doc map[string]any) (ProgressRecord, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("encode doc: %w", err)
	}
	var r ProgressRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return ProgressRecord{}, fmt.Errorf("decode record: %w", err)
	}
	if r.Inventory.Powerups == nil {
		r.Inventory.Powerups = map[string]int{}
	}
	if r.Modules == nil {
		r.Modules = map[string]bool{}
	}
	if r.Level < 1 {
		r.Level = 1
	}
	return r, nil
}
