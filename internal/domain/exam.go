package domain

// ─── Exam Types ─────────────────────────────────────────────────────────────

// ExamType distinguishes exam flavors in the attempt history.
type ExamType string

const (
	ExamFinal    ExamType = "final"
	ExamSurprise ExamType = "surprise"
	ExamPractice ExamType = "practice"
)

// PassingGrade is the minimum grade (0–10 scale) that counts as a pass,
// and the floor of the progressive retry cap.
const PassingGrade = 5.0

// PowerupID identifies an in-exam aid or inventory consumable.
type PowerupID string

const (
	PowerupFiftyFifty   PowerupID = "fifty_fifty"
	PowerupInsurance    PowerupID = "insurance"
	PowerupDoubleXP     PowerupID = "double_xp"
	PowerupSkip         PowerupID = "skip_question"
	PowerupStreakFreeze PowerupID = "streak_freeze"
)

// Question is one entry of the read-only question bank.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Explanation   string   `json:"explanation"`
}
