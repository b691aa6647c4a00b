package wallet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccorso-app/soccorso/internal/app/wallet"
	"github.com/soccorso-app/soccorso/internal/infra/store"
)

func testWallet(t *testing.T) (*wallet.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	clock := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	return wallet.NewService(mem, func() time.Time { return clock }), mem
}

func TestEarn_CreatesMatchedPair(t *testing.T) {
	w, mem := testWallet(t)
	require.NoError(t, w.Earn(200, "exam_final", "exam reward"))

	player, err := mem.LedgerEntries("player", 10)
	require.NoError(t, err)
	require.Len(t, player, 1)
	assert.Equal(t, "CREDIT", player[0].EntryType)
	assert.Equal(t, int64(200), player[0].Amount)
	assert.Equal(t, int64(200), player[0].Balance)

	pool, err := mem.LedgerEntries("xp_pool", 10)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "DEBIT", pool[0].EntryType)
	assert.Equal(t, int64(-200), pool[0].Balance)
}

func TestSpend_DebitsPlayer(t *testing.T) {
	w, _ := testWallet(t)
	require.NoError(t, w.Earn(500, "", "seed"))
	require.NoError(t, w.Spend(120, "avatar_medic", "shop purchase"))

	balance, err := w.Balance()
	require.NoError(t, err)
	assert.Equal(t, int64(380), balance)
}

func TestTransfer_RejectsNonPositiveAmounts(t *testing.T) {
	w, _ := testWallet(t)
	assert.Error(t, w.Earn(0, "", ""))
	assert.Error(t, w.Earn(-10, "", ""))
	assert.Error(t, w.Spend(0, "", ""))
	assert.Error(t, w.Spend(-10, "", ""))
}

func TestLedger_DebitsEqualCredits(t *testing.T) {
	w, mem := testWallet(t)
	require.NoError(t, w.Earn(300, "", "quest claim"))
	require.NoError(t, w.Earn(150, "", "milestone"))
	require.NoError(t, w.Spend(200, "", "powerup"))

	var debits, credits int64
	for _, account := range []string{"player", "xp_pool"} {
		entries, err := mem.LedgerEntries(account, 100)
		require.NoError(t, err)
		for _, e := range entries {
			switch e.EntryType {
			case "DEBIT":
				debits += e.Amount
			case "CREDIT":
				credits += e.Amount
			}
		}
	}
	assert.Equal(t, debits, credits, "double-entry invariant")
}

func TestHistory_NewestFirst(t *testing.T) {
	w, _ := testWallet(t)
	require.NoError(t, w.Earn(100, "a", "first"))
	require.NoError(t, w.Earn(50, "b", "second"))

	entries, err := w.History(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Reference)
	assert.Equal(t, "a", entries[1].Reference)
	assert.Equal(t, int64(150), entries[0].Balance)
}
