package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SQLite persists documents in a single-writer SQLite database with WAL
// mode. Documents are stored as JSON text; merge semantics are applied in
// Go before the write.
type SQLite struct {
	db   *sql.DB
	subs *subscribers
}

// Open creates or opens the database at dir/progress.db.
// Enables WAL mode and a 5-second busy timeout.
func Open(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "progress.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLite{db: db, subs: newSubscribers()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close cleanly shuts down the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Ping checks database connectivity.
func (s *SQLite) Ping() error { return s.db.Ping() }

// migrate runs idempotent schema migrations.
func (s *SQLite) migrate() error {
	migrations := []string{
		// Progress documents, one JSON doc per player
		`CREATE TABLE IF NOT EXISTS records (
			key        TEXT PRIMARY KEY,
			doc        TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_updated ON records(updated_at)`,

		// XP ledger (double-entry bookkeeping)
		`CREATE TABLE IF NOT EXISTS xp_ledger (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			type        TEXT NOT NULL,
			entry_type  TEXT NOT NULL,
			account     TEXT NOT NULL,
			amount      INTEGER NOT NULL,
			reference   TEXT,
			description TEXT,
			balance     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_ledger_ts ON xp_ledger(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_ledger_account ON xp_ledger(account)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Get returns the document for key, or nil when absent.
func (s *SQLite) Get(key string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRow(`SELECT doc FROM records WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode doc %q: %w", key, err)
	}
	return doc, nil
}

// Set writes a document, deep-merging when merge is true, and notifies
// subscribers with the stored result.
func (s *SQLite) Set(key string, doc map[string]any, merge bool) error {
	final := doc
	if merge {
		existing, err := s.Get(key)
		if err != nil {
			return err
		}
		if existing != nil {
			final = deepMerge(existing, doc)
		}
	}

	raw, err := json.Marshal(final)
	if err != nil {
		return fmt.Errorf("encode doc %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO records (key, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET doc=excluded.doc, updated_at=excluded.updated_at`,
		key, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return err
	}

	s.subs.notify(key, final)
	return nil
}

// Keys lists stored document keys with the given prefix.
func (s *SQLite) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT key FROM records WHERE key LIKE ? ORDER BY key`, prefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Subscribe registers a push callback for writes to key.
func (s *SQLite) Subscribe(key string, fn func(map[string]any)) func() {
	return s.subs.add(key, fn)
}

// ─── XP Ledger ──────────────────────────────────────────────────────────────

// LedgerEntry is one row of the double-entry XP ledger.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`       // "earn" | "spend"
	EntryType   string    `json:"entry_type"` // "DEBIT" | "CREDIT"
	Account     string    `json:"account"`
	Amount      int64     `json:"amount"`
	Reference   string    `json:"reference"` // exam/quest/item id
	Description string    `json:"description"`
	Balance     int64     `json:"balance"` // Running balance after this entry
}

// InsertLedgerEntry appends one ledger row.
func (s *SQLite) InsertLedgerEntry(e LedgerEntry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO xp_ledger (timestamp, type, entry_type, account, amount, reference, description, balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), e.Type, e.EntryType, e.Account, e.Amount, e.Reference, e.Description, e.Balance,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LedgerBalance returns the balance of the latest entry for account.
func (s *SQLite) LedgerBalance(account string) (int64, error) {
	var bal int64
	err := s.db.QueryRow(
		`SELECT balance FROM xp_ledger WHERE account = ? ORDER BY id DESC LIMIT 1`, account,
	).Scan(&bal)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return bal, err
}

// LedgerEntries returns the most recent entries for account.
func (s *SQLite) LedgerEntries(account string, limit int) ([]LedgerEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, type, entry_type, account, amount, reference, description, balance
		 FROM xp_ledger WHERE account = ? ORDER BY id DESC LIMIT ?`, account, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Type, &e.EntryType, &e.Account,
			&e.Amount, &e.Reference, &e.Description, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
