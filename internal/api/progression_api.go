package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soccorso-app/soccorso/internal/app/progression"
	"github.com/soccorso-app/soccorso/internal/domain"
)

// changeRequest is the wire form of one update command.
type changeRequest struct {
	Kind     string `json:"kind"` // "setXpTotal" | "gainXp" | "completeModule" | "patchStats"
	Amount   int    `json:"amount,omitempty"`
	Source   string `json:"source,omitempty"`
	ModuleID string `json:"moduleId,omitempty"`
	Field    string `json:"field,omitempty"` // stats counter name
}

// changesRequest is a batch applied in order against one evolving draft.
type changesRequest struct {
	Changes    []changeRequest `json:"changes"`
	Multiplier float64         `json:"multiplier,omitempty"`
}

var statFields = map[string]progression.StatField{
	"modulesCompleted": progression.StatModulesCompleted,
	"guardiaPlayed":    progression.StatGuardiaPlayed,
	"correctAnswers":   progression.StatCorrectAnswers,
	"glossaryViews":    progression.StatGlossaryViews,
}

func (c changeRequest) toChange() (progression.Change, error) {
	switch c.Kind {
	case "setXpTotal":
		return progression.Change{Kind: progression.ChangeSetXPTotal, Amount: c.Amount}, nil
	case "gainXp":
		return progression.Change{
			Kind: progression.ChangeGainXP, Amount: c.Amount,
			Source: progression.XPSource(c.Source),
		}, nil
	case "completeModule":
		return progression.Change{Kind: progression.ChangeCompleteModule, ModuleID: c.ModuleID}, nil
	case "patchStats":
		field, ok := statFields[c.Field]
		if !ok {
			return progression.Change{}, domain.ErrUnknownStatField
		}
		amount := c.Amount
		if amount == 0 {
			amount = 1
		}
		return progression.Change{Kind: progression.ChangePatchStats, Field: field, Amount: amount}, nil
	default:
		return progression.Change{}, domain.ErrUnknownChange
	}
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := s.progress.Progress(chi.URLParam(r, "player"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	rec, events, err := s.progress.Login(chi.URLParam(r, "player"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec, "events": events})
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	var req changesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	changes := make([]progression.Change, 0, len(req.Changes))
	for _, c := range req.Changes {
		ch, err := c.toChange()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		changes = append(changes, ch)
	}
	multiplier := req.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	rec, events, err := s.progress.ApplyChanges(chi.URLParam(r, "player"), changes, multiplier)
	if err != nil && !errors.Is(err, domain.ErrSaveFailed) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec, "events": events})
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	window := domain.QuestWindow(r.URL.Query().Get("window"))
	if window != domain.WindowWeekly {
		window = domain.WindowDaily
	}
	quests, claimed, err := s.progress.QuestRoster(chi.URLParam(r, "player"), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": quests, "claimed": claimed})
}

func (s *Server) handleClaimQuests(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Window string `json:"window"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	window := domain.QuestWindow(req.Window)
	if window != domain.WindowWeekly {
		window = domain.WindowDaily
	}

	rec, granted, err := s.progress.ClaimQuests(chi.URLParam(r, "player"), window)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec, "granted": granted})
}

func (s *Server) handleStartExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	examType := domain.ExamType(req.Type)
	if examType == "" {
		examType = domain.ExamFinal
	}

	sess, err := s.progress.StartExam(chi.URLParam(r, "player"), examType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"session":   sess.ID,
		"type":      sess.Type,
		"questions": publicQuestions(sess),
	})
}

// publicQuestions strips the correct option and explanation from the
// session questions — the client never sees the answer key.
func publicQuestions(sess *progression.ExamSession) []map[string]any {
	out := make([]map[string]any, len(sess.Questions))
	for i, q := range sess.Questions {
		out[i] = map[string]any{
			"index":   i,
			"id":      q.ID,
			"prompt":  q.Prompt,
			"options": q.Options,
		}
	}
	return out
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question int `json:"question"`
		Option   int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, events, err := s.progress.SubmitAnswer(
		chi.URLParam(r, "player"), chi.URLParam(r, "session"), req.Question, req.Option)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"correct": correct, "events": events})
}

func (s *Server) handlePowerup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Powerup  string `json:"powerup"`
		Question int    `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.progress.ActivatePowerup(
		chi.URLParam(r, "player"), chi.URLParam(r, "session"),
		domain.PowerupID(req.Powerup), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientXP):
			writeError(w, http.StatusPaymentRequired, err.Error())
		default:
			writeSessionError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec})
}

func (s *Server) handleFinishExam(w http.ResponseWriter, r *http.Request) {
	result, rec, events, err := s.progress.FinishExam(
		chi.URLParam(r, "player"), chi.URLParam(r, "session"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"score":    result.RawScore,
		"grade":    result.Grade,
		"maxGrade": result.MaxGrade,
		"passed":   result.Passed,
		"rewardXp": result.RewardXP,
		"voided":   result.Attempt == nil && !result.Passed,
		"record":   rec,
		"events":   events,
	})
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	questions, err := s.progress.PracticeQuestions(chi.URLParam(r, "player"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.progress.Purchase(chi.URLParam(r, "player"), req.Item)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownShopItem):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInsufficientXP):
			writeError(w, http.StatusPaymentRequired, err.Error())
		default:
			writeStoreError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec})
}

func (s *Server) handleDailyChallenge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario": s.progress.DailyChallenge()})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	weekly := r.URL.Query().Get("window") != "lifetime"
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := s.progress.Leaderboard(weekly, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func (s *Server) handleWalletHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.wallet.History(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// writeStoreError maps a recoverable save failure to 503 so the client
// shows "could not save progress" and retries; the draft is not lost.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSaveFailed) {
		writeError(w, http.StatusServiceUnavailable, domain.ErrSaveFailed.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeSessionError maps session errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrExamFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrQuestionOutOfRange), errors.Is(err, domain.ErrOptionOutOfRange),
		errors.Is(err, domain.ErrUnknownPowerup):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeStoreError(w, err)
	}
}
