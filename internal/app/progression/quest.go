package progression

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/soccorso-app/soccorso/internal/domain"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

// GenerateDaily returns the day's quest roster: a seeded Fisher–Yates
// shuffle of the template catalog, first DailyRosterSize templates.
// The seed is the character-code sum of the date key, so every player
// sees the same roster on the same day.
func GenerateDaily(now time.Time) []domain.QuestInstance {
	r := rand.New(rand.NewSource(CharSeed(DateKey(now))))
	shuffled := shuffleTemplates(catalog.QuestTemplates, r)

	n := catalog.DailyRosterSize
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return instantiate(shuffled[:n])
}

// GenerateWeekly returns the week's roster. The seed folds in the ISO week
// number, but the full template set is returned unsampled — a week is long
// enough to clear all of it (intentional difficulty scaling). The shuffle
// only orders the display.
func GenerateWeekly(now time.Time) []domain.QuestInstance {
	year, week := now.ISOWeek()
	seed := CharSeed(fmt.Sprintf("%d-W%02d", year, week))
	r := rand.New(rand.NewSource(seed))
	return instantiate(shuffleTemplates(catalog.QuestTemplates, r))
}

// shuffleTemplates Fisher–Yates-shuffles a copy of the pool, drawing from
// the generator once per swap.
func shuffleTemplates(pool []domain.QuestTemplate, r *rand.Rand) []domain.QuestTemplate {
	shuffled := make([]domain.QuestTemplate, len(pool))
	copy(shuffled, pool)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func instantiate(templates []domain.QuestTemplate) []domain.QuestInstance {
	quests := make([]domain.QuestInstance, len(templates))
	for i, tmpl := range templates {
		quests[i] = domain.QuestInstance{
			ID:          tmpl.ID,
			Type:        tmpl.Type,
			Target:      tmpl.Target,
			Reward:      tmpl.Reward,
			Title:       tmpl.Title,
			Description: tmpl.Description,
			Icon:        tmpl.Icon,
		}
	}
	return quests
}

// EvaluateQuest reports whether a quest is complete against the record and
// the stats window it counts in. Unknown types are an input error, not a
// silent false.
func EvaluateQuest(q domain.QuestInstance, rec domain.ProgressRecord, window domain.StatsWindow) (bool, error) {
	switch q.Type {
	case domain.QuestCompleteModules:
		return window.ModulesCompleted >= q.Target, nil
	case domain.QuestEarnXP:
		return window.XPEarned >= q.Target, nil
	case domain.QuestPlayGuardia:
		return window.GuardiaPlayed >= q.Target, nil
	case domain.QuestAnswerCorrect:
		return window.CorrectAnswers >= q.Target, nil
	case domain.QuestReviewGlossary:
		return window.GlossaryViews >= q.Target, nil
	case domain.QuestMaintainStreak:
		return rec.Streak > 0, nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownQuestType, q.Type)
	}
}

// RosterReward sums the roster's rewards plus the window's claim bonus.
// It reports ok=false unless every quest is completed — claiming is
// all-or-nothing.
func RosterReward(quests []domain.QuestInstance, window domain.QuestWindow) (int, bool) {
	total := 0
	for _, q := range quests {
		if !q.Completed {
			return 0, false
		}
		total += q.Reward
	}
	if len(quests) == 0 {
		return 0, false
	}
	if window == domain.WindowWeekly {
		return total + catalog.WeeklyClaimBonus, true
	}
	return total + catalog.DailyClaimBonus, true
}
