package store

import "sync"

// Memory is an in-memory Store for tests and the offline CLI path. Same
// merge and subscribe semantics as the SQLite store.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]map[string]any
	subs   *subscribers
	ledger []LedgerEntry

	// FailWrites makes every Set return this error, for exercising the
	// caller's retry path.
	FailWrites error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: map[string]map[string]any{}, subs: newSubscribers()}
}

func (m *Memory) Get(key string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

func (m *Memory) Set(key string, doc map[string]any, merge bool) error {
	m.mu.Lock()
	if m.FailWrites != nil {
		m.mu.Unlock()
		return m.FailWrites
	}
	final := doc
	if merge {
		if existing, ok := m.docs[key]; ok {
			final = deepMerge(existing, doc)
		}
	}
	m.docs[key] = final
	m.mu.Unlock()

	m.subs.notify(key, final)
	return nil
}

func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.docs {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *Memory) Subscribe(key string, fn func(map[string]any)) func() {
	return m.subs.add(key, fn)
}

func (m *Memory) Close() error { return nil }

// ─── XP Ledger (in-memory) ──────────────────────────────────────────────────

func (m *Memory) InsertLedgerEntry(e LedgerEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.ledger) + 1)
	m.ledger = append(m.ledger, e)
	return e.ID, nil
}

func (m *Memory) LedgerBalance(account string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.ledger) - 1; i >= 0; i-- {
		if m.ledger[i].Account == account {
			return m.ledger[i].Balance, nil
		}
	}
	return 0, nil
}

func (m *Memory) LedgerEntries(account string, limit int) ([]LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []LedgerEntry
	for i := len(m.ledger) - 1; i >= 0 && len(entries) < limit; i-- {
		if m.ledger[i].Account == account {
			entries = append(entries, m.ledger[i])
		}
	}
	return entries, nil
}
