/*
Package sqlite provides the SQLite-backed store adapter.

PURPOSE:
  Implements shift.Store and roster.Store over database/sql + SQLite.
  The same patterns apply to PostgreSQL; only minor dialect differences.

KEY TABLES:
  schedule_days:    one row per calendar date with assigned shift codes
  special_dates:    flagged-special calendar dates
  settings:         single-row pay configuration (salary, rate, combos)
  monthly_salaries: per (year, month) salary overrides
  roster_entries:   the shared roster ledger

SNAPSHOT SEMANTICS:
  SaveSchedule and SaveSpecialDates replace the whole snapshot inside one
  SQL transaction: either the full new state lands or nothing does, so a
  failed call leaves the previous state intact and a retry is safe.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block and crash recovery improves.

USAGE:
  st, err := sqlite.New("./anwh.db")
  if err != nil { ... }
  defer st.Close()

MIGRATION:
  Schema is created on New(). For production at scale, use a versioned
  migration tool instead.

SEE ALSO:
  - shift/store.go: interface contracts
  - shift/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
)

// Store implements the calendar and roster storage interfaces over SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Compile-time interface checks.
var (
	_ shift.Store  = (*Store)(nil)
	_ roster.Store = (*Store)(nil)
)

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- One person's private calendar: a date only exists while it has shifts
	CREATE TABLE IF NOT EXISTS schedule_days (
		date TEXT PRIMARY KEY,
		codes_json TEXT NOT NULL
	);

	-- Flagged-special dates (presence = special)
	CREATE TABLE IF NOT EXISTS special_dates (
		date TEXT PRIMARY KEY
	);

	-- Pay configuration (single row)
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		basic_salary TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		combinations_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Per-month salary overrides
	CREATE TABLE IF NOT EXISTS monthly_salaries (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (year, month)
	);

	-- Shared roster ledger
	CREATE TABLE IF NOT EXISTS roster_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		shift_label TEXT NOT NULL,
		assigned_name TEXT NOT NULL,
		editor_name TEXT,
		special_annotation TEXT,
		created_at TEXT NOT NULL
	);

	-- Annotation scans and per-date filters both hit this
	CREATE INDEX IF NOT EXISTS idx_roster_entries_date
		ON roster_entries(date);
	CREATE INDEX IF NOT EXISTS idx_roster_entries_assigned
		ON roster_entries(assigned_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULE
// =============================================================================

func (s *Store) LoadSchedule(ctx context.Context) (shift.DaySchedule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, codes_json FROM schedule_days`)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	schedule := shift.DaySchedule{}
	for rows.Next() {
		var date, codesJSON string
		if err := rows.Scan(&date, &codesJSON); err != nil {
			return nil, fmt.Errorf("load schedule: %w", err)
		}
		var codes []shift.Code
		if err := json.Unmarshal([]byte(codesJSON), &codes); err != nil {
			return nil, fmt.Errorf("load schedule %s: %w", date, err)
		}
		if len(codes) > 0 {
			schedule[date] = codes
		}
	}
	return schedule, rows.Err()
}

func (s *Store) SaveSchedule(ctx context.Context, schedule shift.DaySchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_days`); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	for date, codes := range schedule {
		if len(codes) == 0 {
			continue
		}
		codesJSON, err := json.Marshal(codes)
		if err != nil {
			return fmt.Errorf("save schedule %s: %w", date, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_days (date, codes_json) VALUES (?, ?)`,
			date, string(codesJSON)); err != nil {
			return fmt.Errorf("save schedule %s: %w", date, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// SPECIAL DATES
// =============================================================================

func (s *Store) LoadSpecialDates(ctx context.Context) (shift.SpecialDates, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM special_dates`)
	if err != nil {
		return nil, fmt.Errorf("load special dates: %w", err)
	}
	defer rows.Close()

	special := shift.SpecialDates{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("load special dates: %w", err)
		}
		special[date] = true
	}
	return special, rows.Err()
}

func (s *Store) SaveSpecialDates(ctx context.Context, special shift.SpecialDates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save special dates: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM special_dates`); err != nil {
		return fmt.Errorf("save special dates: %w", err)
	}
	for date, flagged := range special {
		if !flagged {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO special_dates (date) VALUES (?)`, date); err != nil {
			return fmt.Errorf("save special dates %s: %w", date, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) LoadSettings(ctx context.Context) (shift.Settings, error) {
	var basicSalary, hourlyRate, combosJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT basic_salary, hourly_rate, combinations_json FROM settings WHERE id = 1`).
		Scan(&basicSalary, &hourlyRate, &combosJSON)
	if err == sql.ErrNoRows {
		return shift.DefaultSettings(), nil
	}
	if err != nil {
		return shift.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := shift.Settings{}
	if settings.BasicSalary, err = decimal.NewFromString(basicSalary); err != nil {
		return shift.Settings{}, fmt.Errorf("load settings salary: %w", err)
	}
	if settings.HourlyRate, err = decimal.NewFromString(hourlyRate); err != nil {
		return shift.Settings{}, fmt.Errorf("load settings rate: %w", err)
	}

	var combos []combinationRow
	if err := json.Unmarshal([]byte(combosJSON), &combos); err != nil {
		return shift.Settings{}, fmt.Errorf("load settings combinations: %w", err)
	}
	for _, c := range combos {
		h, err := decimal.NewFromString(c.Hours)
		if err != nil {
			return shift.Settings{}, fmt.Errorf("load settings combination %s: %w", c.Key, err)
		}
		settings.Combinations = append(settings.Combinations, shift.Combination{Key: c.Key, Hours: h})
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings shift.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	combos := make([]combinationRow, len(settings.Combinations))
	for i, c := range settings.Combinations {
		combos[i] = combinationRow{Key: c.Key, Hours: c.Hours.String()}
	}
	combosJSON, err := json.Marshal(combos)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, basic_salary, hourly_rate, combinations_json, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			basic_salary = excluded.basic_salary,
			hourly_rate = excluded.hourly_rate,
			combinations_json = excluded.combinations_json,
			updated_at = excluded.updated_at`,
		settings.BasicSalary.String(),
		settings.HourlyRate.String(),
		string(combosJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// combinationRow is the persisted JSON shape; hours are kept as strings
// to preserve decimal exactness.
type combinationRow struct {
	Key   string `json:"key"`
	Hours string `json:"hours"`
}

// =============================================================================
// MONTHLY SALARY OVERRIDES
// =============================================================================

func (s *Store) LoadMonthlySalary(ctx context.Context, year int, month time.Month) (decimal.Decimal, error) {
	var amount string
	err := s.db.QueryRowContext(ctx,
		`SELECT amount FROM monthly_salaries WHERE year = ? AND month = ?`,
		year, int(month)).Scan(&amount)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("load monthly salary: %w", err)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load monthly salary %d-%d: %w", year, month, err)
	}
	return d, nil
}

func (s *Store) SaveMonthlySalary(ctx context.Context, year int, month time.Month, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monthly_salaries (year, month, amount) VALUES (?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET amount = excluded.amount`,
		year, int(month), amount.String())
	if err != nil {
		return fmt.Errorf("save monthly salary: %w", err)
	}
	return nil
}

// =============================================================================
// ROSTER LEDGER
// =============================================================================

func (s *Store) FetchAllEntries(ctx context.Context) ([]roster.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, shift_label, assigned_name,
		       COALESCE(editor_name, ''), COALESCE(special_annotation, '')
		FROM roster_entries
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("fetch roster entries: %w", err)
	}
	defer rows.Close()

	var entries []roster.Entry
	for rows.Next() {
		var e roster.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.ShiftLabel, &e.AssignedName,
			&e.EditorName, &e.SpecialAnnotation); err != nil {
			return nil, fmt.Errorf("fetch roster entries: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) SaveEntry(ctx context.Context, e roster.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = fmt.Sprintf("entry-%d", time.Now().UnixNano())
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roster_entries
			(id, date, shift_label, assigned_name, editor_name, special_annotation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			shift_label = excluded.shift_label,
			assigned_name = excluded.assigned_name,
			editor_name = excluded.editor_name,
			special_annotation = excluded.special_annotation`,
		e.ID, e.Date, e.ShiftLabel, e.AssignedName, e.EditorName, e.SpecialAnnotation,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save roster entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM roster_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shift.ErrNotFound
	}
	return nil
}
