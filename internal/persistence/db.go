// Package persistence provides the SQLite event journal: an append-only
// record of simulation events and daily statistics for later inspection.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Kieren92/ColonySim/internal/events"
	"github.com/Kieren92/ColonySim/internal/telemetry"
)

// DB wraps a SQLite connection for journal writes.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		type TEXT NOT NULL,
		member TEXT,
		detail TEXT
	);

	CREATE TABLE IF NOT EXISTS days (
		tick INTEGER PRIMARY KEY,
		sim_time TEXT NOT NULL,
		population INTEGER NOT NULL,
		need_mean REAL NOT NULL,
		need_stddev REAL NOT NULL,
		need_min REAL NOT NULL,
		alignment_mean REAL NOT NULL,
		produced INTEGER NOT NULL,
		confiscations INTEGER NOT NULL,
		critical_needs INTEGER NOT NULL,
		blacklists INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_tick ON journal(tick);
	CREATE INDEX IF NOT EXISTS idx_journal_type ON journal(type);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// AppendEvent journals one simulation event. Intended as a bus handler;
// write failures are returned so the caller can decide whether to log.
func (db *DB) AppendEvent(ev events.Event) error {
	_, err := db.conn.Exec(
		`INSERT INTO journal (tick, type, member, detail) VALUES (?, ?, ?, ?)`,
		ev.Tick, string(ev.Type), ev.Member, ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// SaveDay upserts one day's statistics row.
func (db *DB) SaveDay(day telemetry.DayStats) error {
	_, err := db.conn.Exec(`
		INSERT INTO days (tick, sim_time, population, need_mean, need_stddev,
			need_min, alignment_mean, produced, confiscations, critical_needs, blacklists)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tick) DO UPDATE SET
			population = excluded.population,
			need_mean = excluded.need_mean,
			need_stddev = excluded.need_stddev,
			need_min = excluded.need_min,
			alignment_mean = excluded.alignment_mean,
			produced = excluded.produced,
			confiscations = excluded.confiscations,
			critical_needs = excluded.critical_needs,
			blacklists = excluded.blacklists`,
		day.Tick, day.SimTime, day.Population, day.NeedMean, day.NeedStdDev,
		day.NeedMin, day.AlignmentMean, day.Produced, day.Confiscations,
		day.CriticalNeeds, day.Blacklists,
	)
	if err != nil {
		return fmt.Errorf("save day: %w", err)
	}
	return nil
}

// EventCount returns the number of journaled events (used by tooling and
// tests).
func (db *DB) EventCount() (int, error) {
	var n int
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM journal`); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
