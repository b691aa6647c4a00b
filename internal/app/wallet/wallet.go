// Package wallet implements the double-entry XP ledger. Every grant or
// spend creates matched DEBIT/CREDIT entries between the system pool and
// the player account; SUM(debits) == SUM(credits) is an invariant. The
// ledger is an audit trail — the progress record stays the balance of
// record for gameplay.
package wallet

import (
	"fmt"
	"time"

	"github.com/soccorso-app/soccorso/internal/infra/store"
)

const (
	accountPool   = "xp_pool"
	accountPlayer = "player"

	txEarn  = "earn"
	txSpend = "spend"

	entryDebit  = "DEBIT"
	entryCredit = "CREDIT"
)

// Ledger is the slice of the store the wallet needs.
type Ledger interface {
	InsertLedgerEntry(store.LedgerEntry) (int64, error)
	LedgerBalance(account string) (int64, error)
	LedgerEntries(account string, limit int) ([]store.LedgerEntry, error)
}

// Service manages the XP ledger.
type Service struct {
	ledger Ledger
	now    func() time.Time
}

// NewService creates a wallet service.
func NewService(ledger Ledger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{ledger: ledger, now: now}
}

// Balance returns the player's ledger balance.
func (s *Service) Balance() (int64, error) {
	return s.ledger.LedgerBalance(accountPlayer)
}

// Earn records XP granted to the player (exam reward, quest claim,
// milestone bonus). Creates matched DEBIT (pool) and CREDIT (player)
// entries.
func (s *Service) Earn(amount int64, reference, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("earn amount must be positive, got %d", amount)
	}
	return s.transfer(txEarn, accountPool, accountPlayer, amount, reference, reason)
}

// Spend records XP debited from the player (shop purchase, in-exam aid).
func (s *Service) Spend(amount int64, reference, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("spend amount must be positive, got %d", amount)
	}
	return s.transfer(txSpend, accountPlayer, accountPool, amount, reference, reason)
}

// History returns recent player ledger entries.
func (s *Service) History(limit int) ([]store.LedgerEntry, error) {
	return s.ledger.LedgerEntries(accountPlayer, limit)
}

// transfer writes the matched pair: DEBIT from, CREDIT to.
func (s *Service) transfer(txType, from, to string, amount int64, reference, reason string) error {
	now := s.now()

	fromBal, err := s.ledger.LedgerBalance(from)
	if err != nil {
		return fmt.Errorf("get %s balance: %w", from, err)
	}
	toBal, err := s.ledger.LedgerBalance(to)
	if err != nil {
		return fmt.Errorf("get %s balance: %w", to, err)
	}

	_, err = s.ledger.InsertLedgerEntry(store.LedgerEntry{
		Timestamp:   now,
		Type:        txType,
		EntryType:   entryDebit,
		Account:     from,
		Amount:      amount,
		Reference:   reference,
		Description: reason,
		Balance:     fromBal - amount,
	})
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}

	_, err = s.ledger.InsertLedgerEntry(store.LedgerEntry{
		Timestamp:   now,
		Type:        txType,
		EntryType:   entryCredit,
		Account:     to,
		Amount:      amount,
		Reference:   reference,
		Description: reason,
		Balance:     toBal + amount,
	})
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return nil
}
