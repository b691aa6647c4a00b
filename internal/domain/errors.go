package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Update engine input errors — fail fast, nothing partially applied
	ErrUnknownChange    = errors.New("unknown change kind")
	ErrUnknownStatField = errors.New("unknown stats field")
	ErrBadMultiplier    = errors.New("multiplier must be a positive finite number")
	ErrMissingModuleID  = errors.New("module completion change requires a module id")

	// Quest errors
	ErrUnknownQuestType = errors.New("unknown quest type")

	// Exam errors
	ErrExamFinished       = errors.New("exam session already finished")
	ErrSessionNotFound    = errors.New("exam session not found")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
	ErrUnknownPowerup     = errors.New("unknown powerup")

	// Persistence errors — recoverable: the in-memory draft stays
	// authoritative and the caller may retry with it.
	ErrSaveFailed = errors.New("could not save progress")

	// Wallet / shop errors
	ErrInsufficientXP  = errors.New("insufficient xp")
	ErrUnknownShopItem = errors.New("unknown shop item")
)
