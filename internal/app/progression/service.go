package progression

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/soccorso-app/soccorso/internal/app/wallet"
	"github.com/soccorso-app/soccorso/internal/domain"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
	"github.com/soccorso-app/soccorso/internal/infra/metrics"
	"github.com/soccorso-app/soccorso/internal/infra/store"
)

// recordKeyPrefix namespaces progress documents in the store.
const recordKeyPrefix = "progress/"

// Service orchestrates the progression engine over the document store.
//
// Updates run single-writer: one mutex serializes every Apply against the
// latest in-memory draft, so two UI flows fired in quick succession
// compose correctly even when the first durable write has not completed.
// Store writes use merge semantics and are retryable — a failed write
// keeps the draft authoritative and surfaces domain.ErrSaveFailed.
type Service struct {
	store  store.Store
	engine *Engine
	wallet *wallet.Service // optional audit ledger
	log    *slog.Logger

	now func() time.Time
	rng *rand.Rand

	mu       sync.Mutex
	drafts   map[string]domain.ProgressRecord
	sessions map[string]*ExamSession // session id → session
	owners   map[string]string       // session id → player
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source (tests cross day and week boundaries).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand injects the generator used for exam question draws.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithWallet attaches the XP audit ledger.
func WithWallet(w *wallet.Service) Option {
	return func(s *Service) { s.wallet = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates the progression service.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		engine:   NewEngine(catalog.Levels),
		log:      slog.Default(),
		now:      time.Now,
		drafts:   map[string]domain.ProgressRecord{},
		sessions: map[string]*ExamSession{},
		owners:   map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// Progress returns the latest record for a player: the in-memory draft if
// one exists, else the stored document, else a fresh record.
func (s *Service) Progress(player string) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest(player)
}

// latest must be called with the mutex held.
func (s *Service) latest(player string) (domain.ProgressRecord, error) {
	if draft, ok := s.drafts[player]; ok {
		return draft, nil
	}
	doc, err := s.store.Get(recordKeyPrefix + player)
	if err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("load record: %w", err)
	}
	if doc == nil {
		return domain.NewProgressRecord(), nil
	}
	rec, err := domain.RecordFromDoc(doc)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	return rec, nil
}

// commit stores the new draft and persists it with merge semantics.
// Persistence failure is recoverable: the draft stays authoritative and
// the error wraps domain.ErrSaveFailed so callers can retry.
// Must be called with the mutex held.
func (s *Service) commit(player string, rec domain.ProgressRecord) error {
	s.drafts[player] = rec

	doc, err := rec.ToDoc()
	if err != nil {
		return err
	}
	if err := s.store.Set(recordKeyPrefix+player, doc, true); err != nil {
		metrics.StoreWriteFailures.Inc()
		s.log.Warn("progress write failed, draft retained", "player", player, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return nil
}

// emit bumps metrics for derived events.
func emit(events []domain.Event) {
	for _, ev := range events {
		switch ev.Type {
		case domain.EventLevelUp:
			metrics.LevelUps.Inc()
		case domain.EventStreakSaved:
			metrics.StreakFreezes.Inc()
		}
	}
}

// ─── Login & Changes ────────────────────────────────────────────────────────

// Login counts today for the player's streak: continuation, freeze, or
// reset, plus milestone badges and the Monday weekly reset. Logging in
// twice on one day is a no-op.
func (s *Service) Login(player string) (domain.ProgressRecord, []domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.latest(player)
	if err != nil {
		return domain.ProgressRecord{}, nil, err
	}

	updated, events := ApplyLogin(rec, s.now())
	if updated.LastLoginDate == rec.LastLoginDate && rec.LastLoginDate != "" {
		return rec, nil, nil // Already counted today
	}
	emit(events)
	metrics.StreakDays.Set(float64(updated.Streak))
	return updated, events, s.commit(player, updated)
}

// ApplyChanges runs a typed change batch through the update engine and
// persists the result. On input error nothing is applied.
func (s *Service) ApplyChanges(player string, changes []Change, multiplier float64) (domain.ProgressRecord, []domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(player, changes, multiplier)
}

// applyLocked is ApplyChanges without the lock; internal flows that
// already hold the mutex use it directly.
func (s *Service) applyLocked(player string, changes []Change, multiplier float64) (domain.ProgressRecord, []domain.Event, error) {
	rec, err := s.latest(player)
	if err != nil {
		return domain.ProgressRecord{}, nil, err
	}

	updated, events, err := s.engine.Apply(rec, changes, multiplier, s.now())
	if err != nil {
		return rec, nil, err
	}
	emit(events)

	rewarded := map[string]bool{}
	for _, ch := range changes {
		if ch.Kind == ChangeGainXP && ch.Amount > 0 {
			metrics.XPGranted.WithLabelValues(string(ch.Source)).Add(float64(ch.Amount))
		}
		// Only first completions grant; re-completions realized 0 XP and
		// must not drift the counter.
		if ch.Kind == ChangeCompleteModule && !rec.Modules[ch.ModuleID] && !rewarded[ch.ModuleID] {
			rewarded[ch.ModuleID] = true
			metrics.XPGranted.WithLabelValues("module").Add(float64(catalog.ModuleRewardXP))
		}
	}
	s.audit(rec, updated)

	return updated, events, s.commit(player, updated)
}

// audit mirrors the realized XP flow into the wallet ledger, when one is
// attached. Ledger failures only log — the record is the balance of
// record.
func (s *Service) audit(before, after domain.ProgressRecord) {
	if s.wallet == nil {
		return
	}
	earned := after.LifetimeXP - before.LifetimeXP
	if earned > 0 {
		if err := s.wallet.Earn(int64(earned), "", "xp gain"); err != nil {
			s.log.Warn("ledger earn failed", "err", err)
		}
	}
	spent := earned - (after.XP - before.XP)
	if spent > 0 {
		metrics.XPSpent.Add(float64(spent))
		if err := s.wallet.Spend(int64(spent), "", "xp spend"); err != nil {
			s.log.Warn("ledger spend failed", "err", err)
		}
	}
}

// ─── Quests ─────────────────────────────────────────────────────────────────

// QuestRoster returns today's (or this week's) quest instances with their
// completion evaluated, plus whether the roster reward was already
// claimed. Instances are ephemeral — recomputed on every read.
func (s *Service) QuestRoster(player string, window domain.QuestWindow) ([]domain.QuestInstance, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.latest(player)
	if err != nil {
		return nil, false, err
	}
	quests, claimed, err := s.rosterLocked(rec, window)
	return quests, claimed, err
}

func (s *Service) rosterLocked(rec domain.ProgressRecord, window domain.QuestWindow) ([]domain.QuestInstance, bool, error) {
	now := s.now()

	var quests []domain.QuestInstance
	var stats domain.StatsWindow
	var claimed bool
	if window == domain.WindowWeekly {
		quests = GenerateWeekly(now)
		stats = rec.WeeklyStats
		claimed = rec.WeeklyQuests.Claimed
	} else {
		quests = GenerateDaily(now)
		stats = rec.DailyStats
		claimed = rec.DailyQuests.Claimed
		if stats.Date != DateKey(now) {
			stats = domain.StatsWindow{} // Stale window counts as zero
			claimed = false
		}
	}

	for i := range quests {
		done, err := EvaluateQuest(quests[i], rec, stats)
		if err != nil {
			return nil, false, err
		}
		quests[i].Completed = done
	}
	return quests, claimed, nil
}

// ClaimQuests collects the roster reward: permitted only once ALL quests
// are completed and the window's claim flag is unset. Double claims and
// incomplete rosters are silent no-ops (granted == 0) — both are
// reachable through ordinary double-click UI behavior.
func (s *Service) ClaimQuests(player string, window domain.QuestWindow) (domain.ProgressRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.latest(player)
	if err != nil {
		return domain.ProgressRecord{}, 0, err
	}

	quests, claimed, err := s.rosterLocked(rec, window)
	if err != nil {
		return rec, 0, err
	}
	if claimed {
		return rec, 0, nil
	}
	reward, ok := RosterReward(quests, window)
	if !ok {
		return rec, 0, nil
	}

	updated, events, err := s.engine.Apply(rec, []Change{
		{Kind: ChangeGainXP, Amount: reward, Source: SourceQuestClaim},
	}, 1, s.now())
	if err != nil {
		return rec, 0, err
	}
	if window == domain.WindowWeekly {
		updated.WeeklyQuests.Claimed = true
	} else {
		updated.DailyQuests.Claimed = true
	}
	events = append(events, domain.Event{Type: domain.EventQuestClaimed, XP: reward, Name: string(window)})
	emit(events)

	metrics.QuestsClaimed.WithLabelValues(string(window)).Inc()
	metrics.XPGranted.WithLabelValues(string(SourceQuestClaim)).Add(float64(reward))
	s.audit(rec, updated)

	return updated, reward, s.commit(player, updated)
}

// ─── Exams ──────────────────────────────────────────────────────────────────

// StartExam opens an exam session with a randomized question subset.
func (s *Service) StartExam(player string, examType domain.ExamType) (*ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := NewExamSession(examType, catalog.Questions, catalog.ExamQuestionCount, s.rng, s.now())
	s.sessions[sess.ID] = sess
	s.owners[sess.ID] = player
	return sess, nil
}

// Session returns an open exam session.
func (s *Service) Session(sessionID string) (*ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// SubmitAnswer records an answer and applies its derived effects: the
// correct-answer counter, the perfect-answer streak (with milestone bonus
// XP exactly once per crossing), and the spaced-practice question sets.
func (s *Service) SubmitAnswer(player, sessionID string, question, option int) (bool, []domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.owners[sessionID] != player {
		return false, nil, domain.ErrSessionNotFound
	}
	_, regraded := sess.Answers[question]
	if err := sess.Answer(question, option); err != nil {
		return false, nil, err
	}
	correct := sess.Correct(question)

	rec, err := s.latest(player)
	if err != nil {
		return correct, nil, err
	}

	// A question counts once: changing an answer re-grades the session but
	// never feeds the stats, the perfect streak, or milestone XP again —
	// otherwise re-answering one question farms the answer_correct quest.
	var changes []Change
	var events []domain.Event
	newStreak := rec.PerfectStreak
	if !regraded {
		if correct {
			changes = append(changes, Change{Kind: ChangePatchStats, Field: StatCorrectAnswers, Amount: 1})
		}
		var milestone *domain.PerfectMilestone
		newStreak, milestone = AdvancePerfectStreak(rec.PerfectStreak, correct)
		if milestone != nil {
			changes = append(changes, Change{Kind: ChangeGainXP, Amount: milestone.XP, Source: SourceMilestone})
			events = append(events, domain.Event{
				Type: domain.EventPerfectMilestone, Count: milestone.Count, XP: milestone.XP, Name: milestone.Name,
			})
		}
	}

	updated := rec
	if len(changes) > 0 {
		updated, _, err = s.engine.Apply(rec, changes, 1, s.now())
		if err != nil {
			return correct, nil, err
		}
	} else {
		updated = rec.Clone()
	}
	updated.PerfectStreak = newStreak

	qid := sess.Questions[question].ID
	if correct {
		if contains(updated.FailedQuestions, qid) {
			updated.FailedQuestions = remove(updated.FailedQuestions, qid)
			if !contains(updated.MasteredQuestions, qid) {
				updated.MasteredQuestions = append(updated.MasteredQuestions, qid)
			}
		}
	} else {
		updated.MasteredQuestions = remove(updated.MasteredQuestions, qid)
		if !contains(updated.FailedQuestions, qid) {
			updated.FailedQuestions = append(updated.FailedQuestions, qid)
		}
	}

	emit(events)
	s.audit(rec, updated)
	return correct, events, s.commit(player, updated)
}

// ActivatePowerup unlocks an in-exam aid for the session. Payment order:
// one inventory charge if available, else the aid's XP price (failing with
// ErrInsufficientXP when the balance is short). Re-activating an aid
// already active this session is a silent no-op and charges nothing.
func (s *Service) ActivatePowerup(player, sessionID string, id domain.PowerupID, question int) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.owners[sessionID] != player {
		return domain.ProgressRecord{}, domain.ErrSessionNotFound
	}
	rec, err := s.latest(player)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	if sess.PowerupUsed(id) {
		return rec, nil
	}

	price, known := catalog.PowerupPrices[id]
	if !known {
		return rec, fmt.Errorf("%w: %q", domain.ErrUnknownPowerup, id)
	}

	updated := rec.Clone()
	if updated.Inventory.Powerups[string(id)] > 0 {
		updated.Inventory.Powerups[string(id)]--
	} else {
		if updated.XP < price {
			return rec, fmt.Errorf("%w: need %d xp for %s", domain.ErrInsufficientXP, price, id)
		}
		updated, _, err = s.engine.Apply(updated, []Change{
			{Kind: ChangeGainXP, Amount: -price, Source: SourcePurchase},
		}, 1, s.now())
		if err != nil {
			return rec, err
		}
	}

	if err := sess.ActivatePowerup(id, question); err != nil {
		return rec, err
	}

	metrics.PowerupsActivated.WithLabelValues(string(id)).Inc()
	s.audit(rec, updated)
	return updated, s.commit(player, updated)
}

// FinishExam grades the session, appends the attempt to the history
// (unless a consumed insurance voided a failing record), grants the
// reward XP on a pass, and closes the session.
func (s *Service) FinishExam(player, sessionID string) (ExamResult, domain.ProgressRecord, []domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.owners[sessionID] != player {
		return ExamResult{}, domain.ProgressRecord{}, nil, domain.ErrSessionNotFound
	}
	rec, err := s.latest(player)
	if err != nil {
		return ExamResult{}, domain.ProgressRecord{}, nil, err
	}

	prior := 0
	for _, a := range rec.ExamAttempts {
		if a.Type == sess.Type {
			prior++
		}
	}

	result, err := sess.Finish(prior, s.now())
	if err != nil {
		return ExamResult{}, rec, nil, err
	}
	delete(s.sessions, sessionID)
	delete(s.owners, sessionID)

	updated := rec.Clone()
	var events []domain.Event
	if result.RewardXP > 0 {
		updated, events, err = s.engine.Apply(updated, []Change{
			{Kind: ChangeGainXP, Amount: result.RewardXP, Source: SourceExamReward},
		}, 1, s.now())
		if err != nil {
			return result, rec, nil, err
		}
		metrics.XPGranted.WithLabelValues(string(SourceExamReward)).Add(float64(result.RewardXP))
	}
	if result.Attempt != nil {
		updated.ExamAttempts = append(updated.ExamAttempts, *result.Attempt)
	}

	if result.Passed {
		for _, badge := range examBadges(result) {
			if updated.HasBadge(badge) {
				continue
			}
			updated.Badges = append(updated.Badges, badge)
			events = append(events, domain.Event{Type: domain.EventBadgeEarned, BadgeID: badge})
		}
	}

	switch {
	case result.Attempt == nil:
		metrics.ExamsGraded.WithLabelValues("voided").Inc()
	case result.Passed:
		metrics.ExamsGraded.WithLabelValues("passed").Inc()
	default:
		metrics.ExamsGraded.WithLabelValues("failed").Inc()
	}

	emit(events)
	s.audit(rec, updated)
	return result, updated, events, s.commit(player, updated)
}

// ─── Shop, Challenge & Leaderboard ──────────────────────────────────────────

// Purchase buys a shop item with spendable XP. Cosmetics already owned are
// a silent no-op; powerups stack as charges.
func (s *Service) Purchase(player, itemID string) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := catalog.FindShopItem(itemID)
	if !ok {
		return domain.ProgressRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownShopItem, itemID)
	}
	rec, err := s.latest(player)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	if item.Category != domain.ShopPowerups && ownsCosmetic(rec, item) {
		return rec, nil
	}
	if rec.XP < item.Price {
		return rec, fmt.Errorf("%w: need %d xp for %s", domain.ErrInsufficientXP, item.Price, itemID)
	}

	updated, _, err := s.engine.Apply(rec, []Change{
		{Kind: ChangeGainXP, Amount: -item.Price, Source: SourcePurchase},
	}, 1, s.now())
	if err != nil {
		return rec, err
	}

	switch item.Category {
	case domain.ShopAvatars:
		updated.Inventory.Avatars = append(updated.Inventory.Avatars, item.ID)
	case domain.ShopThemes:
		updated.Inventory.Themes = append(updated.Inventory.Themes, item.ID)
	case domain.ShopTitles:
		updated.Inventory.Titles = append(updated.Inventory.Titles, item.ID)
	case domain.ShopPowerups:
		updated.Inventory.Powerups[item.ID]++
	}

	// Collection badge when the category is complete.
	if badge := catalog.CollectionBadgeID(item.Category); badge != "" &&
		!updated.HasBadge(badge) && ownsCategory(updated, item.Category) {
		updated.Badges = append(updated.Badges, badge)
	}

	if s.wallet != nil {
		if err := s.wallet.Spend(int64(item.Price), item.ID, "shop purchase"); err != nil {
			s.log.Warn("ledger spend failed", "item", item.ID, "err", err)
		}
	}
	metrics.XPSpent.Add(float64(item.Price))

	return updated, s.commit(player, updated)
}

// DailyChallenge returns today's scenario — the same one for every player.
func (s *Service) DailyChallenge() string {
	return catalog.Scenarios[Select(s.now(), len(catalog.Scenarios))]
}

// PracticeQuestions returns the spaced-practice roster: questions the
// player has failed and not yet mastered.
func (s *Service) PracticeQuestions(player string) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.latest(player)
	if err != nil {
		return nil, err
	}
	var out []domain.Question
	for _, q := range catalog.Questions {
		if contains(rec.FailedQuestions, q.ID) && !contains(rec.MasteredQuestions, q.ID) {
			out = append(out, q)
		}
	}
	return out, nil
}

// LeaderboardRow is one ranked player.
type LeaderboardRow struct {
	Player     string `json:"player"`
	XP         int    `json:"xp"`
	Level      int    `json:"level"`
	WeeklyXP   int    `json:"weeklyXp"`
	LifetimeXP int    `json:"lifetimeXp"`
}

// Leaderboard ranks all stored players by weekly or lifetime XP.
func (s *Service) Leaderboard(weekly bool, limit int) ([]LeaderboardRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.store.Keys(recordKeyPrefix)
	if err != nil {
		return nil, err
	}

	var rows []LeaderboardRow
	for _, key := range keys {
		doc, err := s.store.Get(key)
		if err != nil || doc == nil {
			continue
		}
		rec, err := domain.RecordFromDoc(doc)
		if err != nil {
			continue
		}
		rows = append(rows, LeaderboardRow{
			Player:     key[len(recordKeyPrefix):],
			XP:         rec.XP,
			Level:      rec.Level,
			WeeklyXP:   rec.WeeklyXP,
			LifetimeXP: rec.LifetimeXP,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if weekly {
			return rows[i].WeeklyXP > rows[j].WeeklyXP
		}
		return rows[i].LifetimeXP > rows[j].LifetimeXP
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// examBadges lists the badges a passing result qualifies for.
func examBadges(result ExamResult) []string {
	badges := []string{catalog.BadgeFirstExamPass}
	if result.Grade == 10 {
		badges = append(badges, catalog.BadgePerfectExam)
	}
	return badges
}

// ownsCategory reports whether every catalog item of the category is owned.
func ownsCategory(rec domain.ProgressRecord, category domain.ShopCategory) bool {
	for _, it := range catalog.ShopItems[category] {
		if !ownsCosmetic(rec, it) {
			return false
		}
	}
	return true
}

func ownsCosmetic(rec domain.ProgressRecord, item domain.ShopItem) bool {
	switch item.Category {
	case domain.ShopAvatars:
		return contains(rec.Inventory.Avatars, item.ID)
	case domain.ShopThemes:
		return contains(rec.Inventory.Themes, item.ID)
	case domain.ShopTitles:
		return contains(rec.Inventory.Titles, item.ID)
	}
	return false
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func remove(s []string, v string) []string {
	out := s[:0]
	for _, e := range s {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
