// Package migration applies the numbered SQL files under migrations/ and keeps
// one schema_migrations row per applied file.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrSchemaTooNew means the database was migrated by a newer lernplan build
var ErrSchemaTooNew = errors.New("database schema is newer than this lernplan build")

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Migration is one NNN_name.sql file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

func (m Migration) String() string {
	return fmt.Sprintf("%03d_%s", m.Version, m.Name)
}

// Applied is a row of schema_migrations
type Applied struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Status compares the history table against the embedded files
type Status struct {
	Current int // highest applied version, 0 for a fresh database
	Latest  int // highest embedded version
	Applied []Applied
	Pending []Migration
}

func (s Status) UpToDate() bool {
	return s.Current == s.Latest && len(s.Pending) == 0
}

// Last returns the most recently applied migration
func (s Status) Last() (Applied, bool) {
	if len(s.Applied) == 0 {
		return Applied{}, false
	}
	return s.Applied[len(s.Applied)-1], true
}

type Runner struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
	now        func() time.Time
}

type Option func(*Runner)

// WithClock sets the time recorded in applied_at
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New parses every migration in files up front, so a malformed file name fails
// before the database is touched.
func New(db *sql.DB, dialect Dialect, files fs.FS, opts ...Option) (*Runner, error) {
	parsed, err := parse(files)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		db:         db,
		dialect:    dialect,
		migrations: parsed,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func parse(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, name, ok := strings.Cut(strings.TrimSuffix(entry.Name(), ".sql"), "_")
		if !ok || name == "" {
			return nil, fmt.Errorf("migration %s: expected NNN_name.sql", entry.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("migration %s: version must be a positive number", entry.Name())
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration %s: version %d already used by %s", entry.Name(), version, other)
		}
		seen[version] = entry.Name()

		body, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Latest is the highest embedded version, 0 when there are no files
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func (r *Runner) insertSQL() string {
	if r.dialect == Postgres {
		return "INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, $3)"
	}
	return "INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)"
}

// Status reads the history table, creating it on a fresh database
func (r *Runner) Status() (Status, error) {
	if err := r.ensureTable(); err != nil {
		return Status{}, err
	}

	rows, err := r.db.Query("SELECT version, name, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return Status{}, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	st := Status{Latest: r.Latest(), Applied: []Applied{}}
	done := make(map[int]bool)
	for rows.Next() {
		var a Applied
		var at string
		if err := rows.Scan(&a.Version, &a.Name, &at); err != nil {
			return Status{}, fmt.Errorf("failed to scan schema_migrations: %w", err)
		}
		// Unparsable timestamps leave AppliedAt zero
		a.AppliedAt, _ = time.Parse(time.RFC3339, at)
		st.Applied = append(st.Applied, a)
		done[a.Version] = true
		st.Current = a.Version
	}
	if err := rows.Err(); err != nil {
		return Status{}, fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	for _, m := range r.migrations {
		if !done[m.Version] {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails with ErrSchemaTooNew when the database is ahead of the embedded files
func (r *Runner) Check() (Status, error) {
	st, err := r.Status()
	if err != nil {
		return st, err
	}
	if st.Current > st.Latest {
		return st, fmt.Errorf("%w: database at version %d, newest known is %d", ErrSchemaTooNew, st.Current, st.Latest)
	}
	return st, nil
}

// Up applies pending migrations in version order. Each file and its history row
// commit together, so a failing file leaves no trace.
func (r *Runner) Up() ([]Migration, error) {
	st, err := r.Check()
	if err != nil {
		return nil, err
	}

	applied := []Migration{}
	for _, m := range st.Pending {
		if err := r.apply(m); err != nil {
			return applied, err
		}
		applied = append(applied, m)
	}
	return applied, nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: failed to begin: %w", m, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %s: %w", m, err)
	}
	at := r.now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(r.insertSQL(), m.Version, m.Name, at); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %s: failed to record: %w", m, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %s: failed to commit: %w", m, err)
	}
	return nil
}
