// Package catalog provides the read-only content tables the progression
// engine consumes: the level table, quest templates, the question bank,
// the shop catalog, and the daily-challenge scenario pool.
// All tables are compiled in; the engine treats them as immutable.
package catalog

import "github.com/soccorso-app/soccorso/internal/domain"

// Levels is the level table. Level is derived as the highest row whose
// MinXP does not exceed lifetime XP.
var Levels = []domain.LevelThreshold{
	{Level: 1, MinXP: 0},
	{Level: 2, MinXP: 150},
	{Level: 3, MinXP: 400},
	{Level: 4, MinXP: 800},
	{Level: 5, MinXP: 1400},
	{Level: 6, MinXP: 2200},
	{Level: 7, MinXP: 3200},
	{Level: 8, MinXP: 4500},
	{Level: 9, MinXP: 6200},
	{Level: 10, MinXP: 8500},
	{Level: 11, MinXP: 11500},
	{Level: 12, MinXP: 15000},
}

// QuestTemplates is the pool daily rosters are sampled from and the full
// weekly roster. Targets are sized for a daily window; the weekly roster
// intentionally reuses them unscaled (difficulty scaling: a full week to
// clear the whole set).
var QuestTemplates = []domain.QuestTemplate{
	{ID: "modules_2", Type: domain.QuestCompleteModules, Target: 2, Reward: 50,
		Title: "Studente modello", Description: "Complete 2 learning modules", Icon: "book"},
	{ID: "earn_100", Type: domain.QuestEarnXP, Target: 100, Reward: 60,
		Title: "Raccoglitore", Description: "Earn 100 XP", Icon: "star"},
	{ID: "guardia_1", Type: domain.QuestPlayGuardia, Target: 1, Reward: 50,
		Title: "Di guardia", Description: "Play a Guardia shift", Icon: "siren"},
	{ID: "correct_10", Type: domain.QuestAnswerCorrect, Target: 10, Reward: 75,
		Title: "Occhio clinico", Description: "Answer 10 questions correctly", Icon: "check"},
	{ID: "glossary_5", Type: domain.QuestReviewGlossary, Target: 5, Reward: 40,
		Title: "Terminologia", Description: "Review 5 glossary entries", Icon: "glossary"},
	{ID: "streak_keep", Type: domain.QuestMaintainStreak, Target: 1, Reward: 80,
		Title: "Costanza", Description: "Keep your login streak alive", Icon: "flame"},
	{ID: "correct_25", Type: domain.QuestAnswerCorrect, Target: 25, Reward: 120,
		Title: "Diagnosta", Description: "Answer 25 questions correctly", Icon: "stethoscope"},
	{ID: "earn_250", Type: domain.QuestEarnXP, Target: 250, Reward: 130,
		Title: "Gran lavoratore", Description: "Earn 250 XP", Icon: "trophy"},
}

// Claim bonuses granted on top of the summed quest rewards.
const (
	DailyClaimBonus  = 50
	WeeklyClaimBonus = 100
)

// DailyRosterSize is how many quests a daily roster holds.
const DailyRosterSize = 3

// PerfectMilestones are the perfect-answer streak thresholds. Each is
// crossed (and its XP granted) at most once per climb.
var PerfectMilestones = []domain.PerfectMilestone{
	{Count: 10, XP: 50, Name: "Infallibile"},
	{Count: 25, XP: 150, Name: "Chirurgico"},
	{Count: 50, XP: 400, Name: "Macchina da guerra"},
	{Count: 100, XP: 1000, Name: "Leggenda del triage"},
}

// StreakMilestones are login-streak lengths that award a badge.
var StreakMilestones = []int{3, 7}

// StreakBadgeID returns the badge id for a login-streak milestone.
func StreakBadgeID(days int) string {
	switch days {
	case 3:
		return "streak_3"
	case 7:
		return "streak_7"
	default:
		return ""
	}
}

// LevelMilestones are levels that award a badge on first reaching them.
var LevelMilestones = []int{5, 10}

// LevelBadgeID returns the badge id for a level milestone.
func LevelBadgeID(level int) string {
	switch level {
	case 5:
		return "level_5"
	case 10:
		return "level_10"
	default:
		return ""
	}
}

// Exam badges, each awarded once.
const (
	BadgeFirstExamPass = "exam_first_pass" // First passed exam of any type
	BadgePerfectExam   = "exam_perfect"    // A grade of 10 after the cap
)

// collectionBadges award owning every cosmetic of a shop category.
var collectionBadges = map[domain.ShopCategory]string{
	domain.ShopAvatars: "collection_avatars",
	domain.ShopThemes:  "collection_themes",
	domain.ShopTitles:  "collection_titles",
}

// CollectionBadgeID returns the badge id for completing a cosmetic
// category, or "" for categories without one.
func CollectionBadgeID(category domain.ShopCategory) string {
	return collectionBadges[category]
}

// ModuleRewardXP is granted the first time a learning module is completed.
const ModuleRewardXP = 50

// ExamRewardXP returns the base XP for passing an exam of the given type.
func ExamRewardXP(t domain.ExamType) int {
	switch t {
	case domain.ExamFinal:
		return 200
	case domain.ExamSurprise:
		return 120
	default:
		return 80
	}
}

// ExamQuestionCount is how many questions one session draws from the bank.
const ExamQuestionCount = 10

// PowerupPrices are the fallback XP prices when the inventory holds no
// charge of the aid.
var PowerupPrices = map[domain.PowerupID]int{
	domain.PowerupFiftyFifty: 30,
	domain.PowerupInsurance:  60,
	domain.PowerupDoubleXP:   50,
	domain.PowerupSkip:       25,
}

// ShopItems is the store catalog, keyed by category.
var ShopItems = map[domain.ShopCategory][]domain.ShopItem{
	domain.ShopAvatars: {
		{ID: "avatar_medic", Category: domain.ShopAvatars, Name: "Paramedico", Price: 200},
		{ID: "avatar_nurse", Category: domain.ShopAvatars, Name: "Infermiere", Price: 200},
		{ID: "avatar_surgeon", Category: domain.ShopAvatars, Name: "Chirurgo", Price: 500},
	},
	domain.ShopThemes: {
		{ID: "theme_night", Category: domain.ShopThemes, Name: "Turno di notte", Price: 300},
		{ID: "theme_er", Category: domain.ShopThemes, Name: "Pronto soccorso", Price: 450},
	},
	domain.ShopTitles: {
		{ID: "title_rescuer", Category: domain.ShopTitles, Name: "Soccorritore", Price: 150},
		{ID: "title_guardian", Category: domain.ShopTitles, Name: "Angelo custode", Price: 400},
	},
	domain.ShopPowerups: {
		{ID: string(domain.PowerupFiftyFifty), Category: domain.ShopPowerups, Name: "50/50", Price: 30,
			Effect: "Removes two wrong options"},
		{ID: string(domain.PowerupInsurance), Category: domain.ShopPowerups, Name: "Assicurazione", Price: 60,
			Effect: "A failed exam leaves no record"},
		{ID: string(domain.PowerupDoubleXP), Category: domain.ShopPowerups, Name: "XP doppi", Price: 50,
			Effect: "Doubles the exam reward"},
		{ID: string(domain.PowerupSkip), Category: domain.ShopPowerups, Name: "Salta domanda", Price: 25,
			Effect: "Skip one question"},
		{ID: string(domain.PowerupStreakFreeze), Category: domain.ShopPowerups, Name: "Congela serie", Price: 100,
			Effect: "Preserves the streak across one missed day"},
	},
}

// FindShopItem looks an item up across all categories.
func FindShopItem(id string) (domain.ShopItem, bool) {
	for _, items := range ShopItems {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return domain.ShopItem{}, false
}

// Scenarios is the daily-challenge pool. The deterministic selector picks
// the same entry for every player on a given date.
var Scenarios = []string{
	"choking_adult",
	"cardiac_arrest",
	"severe_bleeding",
	"burn_second_degree",
	"anaphylaxis",
	"hypothermia",
	"seizure",
	"heat_stroke",
	"fracture_splinting",
	"poisoning_ingestion",
	"drowning_rescue",
	"stroke_fast",
}
