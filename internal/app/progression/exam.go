package progression

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/soccorso-app/soccorso/internal/domain"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

// ExamSession is the transient per-exam state machine: InProgress until
// Finish, then immutable. It lives outside the progress record; only the
// graded attempt (if any) is persisted.
type ExamSession struct {
	ID      string
	Type    domain.ExamType
	Started time.Time

	// Session question subset and the mapping back to the bank.
	Questions   []domain.Question
	GlobalIndex []int // session index → question-bank index

	Current int
	Answers map[int]int // session index → chosen option

	// One-shot powerup state.
	HiddenOptions    map[int][]int // session index → options removed by 50/50
	InsuranceActive  bool
	XPMultiplier     int // 1, or 2 with double-XP active
	SkippedQuestions map[int]bool

	used     map[domain.PowerupID]bool
	finished bool
}

// ExamResult is the outcome of Finish.
type ExamResult struct {
	RawScore int
	Grade    float64
	MaxGrade float64
	Passed   bool
	RewardXP int // 0 unless passed; already multiplied
	// Attempt is nil when a consumed insurance voided a failing record.
	Attempt *domain.ExamAttempt
}

// NewExamSession draws a question subset from the bank and opens a session.
// The draw is shuffled with the provided generator (injected, so tests and
// the surprise-exam flow control it); the subset size is capped by the bank.
func NewExamSession(examType domain.ExamType, bank []domain.Question, count int, r *rand.Rand, now time.Time) *ExamSession {
	order := r.Perm(len(bank))
	if count > len(bank) {
		count = len(bank)
	}

	questions := make([]domain.Question, count)
	global := make([]int, count)
	for i := 0; i < count; i++ {
		questions[i] = bank[order[i]]
		global[i] = order[i]
	}

	return &ExamSession{
		ID:               uuid.NewString(),
		Type:             examType,
		Started:          now,
		Questions:        questions,
		GlobalIndex:      global,
		Answers:          map[int]int{},
		HiddenOptions:    map[int][]int{},
		XPMultiplier:     1,
		SkippedQuestions: map[int]bool{},
		used:             map[domain.PowerupID]bool{},
	}
}

// Answer records the chosen option for a session question.
func (s *ExamSession) Answer(question, option int) error {
	if s.finished {
		return domain.ErrExamFinished
	}
	if question < 0 || question >= len(s.Questions) {
		return fmt.Errorf("%w: %d", domain.ErrQuestionOutOfRange, question)
	}
	if option < 0 || option >= len(s.Questions[question].Options) {
		return fmt.Errorf("%w: %d", domain.ErrOptionOutOfRange, option)
	}
	s.Answers[question] = option
	if question >= s.Current {
		s.Current = question + 1
	}
	return nil
}

// Correct reports whether the recorded answer for a session question is
// the canonical correct option.
func (s *ExamSession) Correct(question int) bool {
	opt, answered := s.Answers[question]
	return answered && opt == s.Questions[question].CorrectOption
}

// PowerupUsed reports whether the aid was already activated this session.
func (s *ExamSession) PowerupUsed(id domain.PowerupID) bool {
	return s.used[id]
}

// ActivatePowerup applies an aid's session effect. Each aid works once per
// session; re-activation is a silent no-op (reachable by double-click).
// Payment (inventory charge or XP) is the caller's concern — the session
// only tracks the effect.
func (s *ExamSession) ActivatePowerup(id domain.PowerupID, question int) error {
	if s.finished {
		return domain.ErrExamFinished
	}
	if s.used[id] {
		return nil
	}

	switch id {
	case domain.PowerupFiftyFifty:
		if question < 0 || question >= len(s.Questions) {
			return fmt.Errorf("%w: %d", domain.ErrQuestionOutOfRange, question)
		}
		s.HiddenOptions[question] = wrongOptions(s.Questions[question], 2)
	case domain.PowerupInsurance:
		s.InsuranceActive = true
	case domain.PowerupDoubleXP:
		s.XPMultiplier = 2
	case domain.PowerupSkip:
		if question < 0 || question >= len(s.Questions) {
			return fmt.Errorf("%w: %d", domain.ErrQuestionOutOfRange, question)
		}
		s.SkippedQuestions[question] = true
		if question >= s.Current {
			s.Current = question + 1
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownPowerup, id)
	}

	s.used[id] = true
	return nil
}

// Finished reports whether the session was graded.
func (s *ExamSession) Finished() bool { return s.finished }

// Finish grades the session and transitions it to Finished.
//
// The raw score counts correct answers over the FULL session question set:
// an unanswered question never counts, even if the UI had an option
// highlighted. The grade is capped progressively by the player's prior
// attempt count — every historical attempt lowers the ceiling by one
// point, floored at the passing grade, so endless retries can still pass
// but never ace. A consumed insurance voids a failing attempt entirely
// (Attempt == nil); reward XP is granted only on a pass and carries the
// double-XP multiplier. Both modifiers are spent either way.
func (s *ExamSession) Finish(priorAttempts int, now time.Time) (ExamResult, error) {
	if s.finished {
		return ExamResult{}, domain.ErrExamFinished
	}
	s.finished = true

	raw := 0
	for i := range s.Questions {
		if s.Correct(i) {
			raw++
		}
	}

	total := len(s.Questions)
	base := 0.0
	if total > 0 {
		base = float64(raw) / float64(total) * 10
	}

	maxAllowed := 10.0 - float64(priorAttempts)
	if maxAllowed < domain.PassingGrade {
		maxAllowed = domain.PassingGrade
	}

	grade := base
	if grade > maxAllowed {
		grade = maxAllowed
	}
	if grade < 0 {
		grade = 0
	}

	result := ExamResult{
		RawScore: raw,
		Grade:    grade,
		MaxGrade: maxAllowed,
		Passed:   grade >= domain.PassingGrade,
	}

	if result.Passed {
		result.RewardXP = catalog.ExamRewardXP(s.Type) * s.XPMultiplier
	}

	// Insurance: a failing attempt leaves no record.
	if !result.Passed && s.InsuranceActive {
		return result, nil
	}

	result.Attempt = &domain.ExamAttempt{
		Score:   raw,
		Grade:   grade,
		Passed:  result.Passed,
		Answers: s.globalAnswers(),
		Type:    s.Type,
		Date:    DateKey(now),
	}
	return result, nil
}

// globalAnswers remaps session-local answer indices to the question bank's
// global indices, so attempts from different randomized subsets line up
// for cross-session analytics.
func (s *ExamSession) globalAnswers() map[int]int {
	answers := make(map[int]int, len(s.Answers))
	for local, opt := range s.Answers {
		answers[s.GlobalIndex[local]] = opt
	}
	return answers
}

// wrongOptions returns up to n option indices that are not the correct one.
func wrongOptions(q domain.Question, n int) []int {
	var wrong []int
	for i := range q.Options {
		if i == q.CorrectOption {
			continue
		}
		wrong = append(wrong, i)
		if len(wrong) == n {
			break
		}
	}
	return wrong
}
