package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/task-tycoon/internal/company"
)

// SQLiteStore keeps the document in one row and mirrors the day history
// into day_log so it can be queried without decoding the document.
type SQLiteStore struct {
	conn *sqlx.DB
}

// DayLogEntry is one row of day_log.
type DayLogEntry struct {
	Day        int     `db:"day" json:"day"`
	TotalCost  float64 `db:"total_cost" json:"total_cost"`
	EndingCash float64 `db:"ending_cash" json:"ending_cash"`
	NetChange  float64 `db:"net_change" json:"net_change"`
	Status     string  `db:"status" json:"status"`
	Bankrupt   bool    `db:"bankrupt" json:"bankrupt"`
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &SQLiteStore{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	return db.conn.Close()
}

func (db *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS company_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		document TEXT NOT NULL,
		day INTEGER NOT NULL,
		cash REAL NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_log (
		day INTEGER PRIMARY KEY,
		total_cost REAL NOT NULL,
		ending_cash REAL NOT NULL,
		net_change REAL NOT NULL,
		status TEXT NOT NULL,
		bankrupt INTEGER NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Load reads the document, or returns a new company when none is stored.
func (db *SQLiteStore) Load(ctx context.Context) (*company.State, error) {
	var doc string
	err := db.conn.GetContext(ctx, &doc, "SELECT document FROM company_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("no stored company, starting fresh")
		return company.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return company.Decode([]byte(doc))
}

// Save replaces the document and brings day_log in line with its history,
// in one transaction.
func (db *SQLiteStore) Save(ctx context.Context, s *company.State) error {
	doc, err := company.Encode(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO company_state
		(id, document, day, cash, updated_at) VALUES (1, ?, ?, ?, ?)`,
		string(doc), s.Day, s.Cash, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if err := syncDayLog(ctx, tx, s.DayHistory); err != nil {
		return fmt.Errorf("sync day log: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES ('saves', COALESCE((SELECT CAST(value AS INTEGER) FROM game_meta WHERE key = 'saves'), 0) + 1)",
	); err != nil {
		return fmt.Errorf("count save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("company saved", "day", s.Day, "days_logged", len(s.DayHistory))
	return nil
}

// syncDayLog appends summaries newer than the last logged day. The log is
// rebuilt from scratch when the history no longer extends it: after a
// reset, or a manual replace whose days differ from the logged ones.
func syncDayLog(ctx context.Context, tx *sqlx.Tx, history []company.DaySummary) error {
	var logged struct {
		Count int            `db:"n"`
		Last  sql.NullInt64  `db:"last_day"`
		JSON  sql.NullString `db:"last_json"`
	}
	err := tx.GetContext(ctx, &logged, `SELECT COUNT(*) AS n, MAX(day) AS last_day,
		(SELECT summary_json FROM day_log ORDER BY day DESC LIMIT 1) AS last_json
		FROM day_log`)
	if err != nil {
		return err
	}

	from := 0
	if logged.Last.Valid {
		for from < len(history) && history[from].Day <= int(logged.Last.Int64) {
			from++
		}
		extends, err := extendsLog(history[:from], int(logged.Last.Int64), logged.Count, logged.JSON.String)
		if err != nil {
			return err
		}
		if !extends {
			if _, err := tx.ExecContext(ctx, "DELETE FROM day_log"); err != nil {
				return err
			}
			from = 0
		}
	}
	if from >= len(history) {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT OR REPLACE INTO day_log
		(day, total_cost, ending_cash, net_change, status, bankrupt, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range history[from:] {
		summaryJSON, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode day %d: %w", d.Day, err)
		}

		bankrupt := 0
		if d.Bankrupt {
			bankrupt = 1
		}

		_, err = stmt.ExecContext(ctx,
			d.Day, d.Costs.TotalCost, d.EndingCash, d.NetChange,
			d.FinancialHealth.Status, bankrupt, string(summaryJSON),
		)
		if err != nil {
			return fmt.Errorf("insert day %d: %w", d.Day, err)
		}
	}
	return nil
}

// extendsLog reports whether prefix, the history up to the last logged
// day, is what the log already holds: same length, ending on that day
// with the same summary.
func extendsLog(prefix []company.DaySummary, lastDay, count int, lastJSON string) (bool, error) {
	if len(prefix) != count || len(prefix) == 0 || prefix[len(prefix)-1].Day != lastDay {
		return false, nil
	}
	b, err := json.Marshal(prefix[len(prefix)-1])
	if err != nil {
		return false, fmt.Errorf("encode day %d: %w", lastDay, err)
	}
	return string(b) == lastJSON, nil
}

// RecentDays returns the most recent logged days, newest first.
func (db *SQLiteStore) RecentDays(ctx context.Context, limit int) ([]DayLogEntry, error) {
	var days []DayLogEntry
	err := db.conn.SelectContext(ctx, &days,
		`SELECT day, total_cost, ending_cash, net_change, status, bankrupt
		FROM day_log ORDER BY day DESC LIMIT ?`,
		limit,
	)
	return days, err
}

// SaveCount returns how many times the document has been saved.
func (db *SQLiteStore) SaveCount(ctx context.Context) (int, error) {
	var value string
	err := db.conn.GetContext(ctx, &value, "SELECT value FROM game_meta WHERE key = 'saves'")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}
