package domain

// ─── Quest Types ────────────────────────────────────────────────────────────

// QuestType categorizes what a quest counts.
type QuestType string

const (
	QuestCompleteModules QuestType = "complete_modules"
	QuestEarnXP          QuestType = "earn_xp"
	QuestPlayGuardia     QuestType = "play_guardia"
	QuestAnswerCorrect   QuestType = "answer_correct"
	QuestReviewGlossary  QuestType = "review_glossary"
	QuestMaintainStreak  QuestType = "maintain_streak"
)

// QuestWindow selects which roster a quest belongs to.
type QuestWindow string

const (
	WindowDaily  QuestWindow = "daily"
	WindowWeekly QuestWindow = "weekly"
)

// QuestTemplate is a catalog entry quests are instantiated from.
type QuestTemplate struct {
	ID          string    `json:"id"`
	Type        QuestType `json:"type"`
	Target      int       `json:"target"`
	Reward      int       `json:"reward"` // XP on roster claim
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// QuestInstance is an ephemeral quest for one day/week. It is recomputed
// on every read from (date, template catalog) and never persisted — only
// the roster's claim flag survives in the progress record.
type QuestInstance struct {
	ID          string    `json:"id"`
	Type        QuestType `json:"type"`
	Target      int       `json:"target"`
	Reward      int       `json:"reward"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Completed   bool      `json:"completed"`
}
