package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lernplan/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func newRunner(t *testing.T, db *sql.DB, files fs.FS) *Runner {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC) }
	r, err := New(db, SQLite, files, WithClock(clock))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count == 1
}

func TestStatusFreshDatabase(t *testing.T) {
	r := newRunner(t, setupTestDB(t), mapFS(map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "not a migration",
	}))

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 0 || st.Latest != 2 || st.UpToDate() {
		t.Errorf("unexpected status %+v", st)
	}
	if len(st.Pending) != 2 || st.Pending[0].String() != "001_first" || st.Pending[1].String() != "002_second" {
		t.Errorf("pending = %v, want [001_first 002_second]", st.Pending)
	}
	if _, ok := st.Last(); ok {
		t.Error("fresh database has no last migration")
	}
}

func TestUpRecordsHistory(t *testing.T) {
	db := setupTestDB(t)
	r := newRunner(t, db, mapFS(map[string]string{
		"001_init.sql":  `CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);`,
		"002_posts.sql": `CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);`,
	}))

	applied, err := r.Up()
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied %d migrations, want 2", len(applied))
	}
	if !tableExists(t, db, "users") || !tableExists(t, db, "posts") {
		t.Error("expected users and posts tables to exist")
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !st.UpToDate() || st.Current != 2 {
		t.Errorf("status after Up = %+v", st)
	}
	last, ok := st.Last()
	if !ok || last.Name != "posts" {
		t.Fatalf("Last = %+v, %v", last, ok)
	}
	if want := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC); !last.AppliedAt.Equal(want) {
		t.Errorf("AppliedAt = %v, want %v", last.AppliedAt, want)
	}

	again, err := r.Up()
	if err != nil || len(again) != 0 {
		t.Errorf("second Up = %v, %v; want nothing applied", again, err)
	}
}

func TestUpIncremental(t *testing.T) {
	db := setupTestDB(t)
	files := mapFS(map[string]string{
		"001_init.sql": `CREATE TABLE users (id INTEGER PRIMARY KEY);`,
	})
	if _, err := newRunner(t, db, files).Up(); err != nil {
		t.Fatalf("Up (1st) failed: %v", err)
	}

	files["002_posts.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE posts (id INTEGER PRIMARY KEY);`)}
	applied, err := newRunner(t, db, files).Up()
	if err != nil {
		t.Fatalf("Up (2nd) failed: %v", err)
	}
	if len(applied) != 1 || applied[0].Version != 2 {
		t.Errorf("applied = %v, want [002_posts]", applied)
	}
}

func TestUpRollsBackFailedFile(t *testing.T) {
	db := setupTestDB(t)
	r := newRunner(t, db, mapFS(map[string]string{
		"001_init.sql": `CREATE TABLE users (id INTEGER PRIMARY KEY);`,
		"002_bad.sql": `
			CREATE TABLE posts (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}))

	applied, err := r.Up()
	if err == nil {
		t.Fatal("Up should fail on invalid SQL")
	}
	if !strings.Contains(err.Error(), "002_bad") {
		t.Errorf("error should name the file: %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("applied = %v, want only 001_init", applied)
	}
	if tableExists(t, db, "posts") {
		t.Error("posts should not exist after a failed migration")
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || len(st.Pending) != 1 {
		t.Errorf("status after failure = %+v", st)
	}
}

func TestCheckNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	newer := newRunner(t, db, mapFS(map[string]string{
		"001_init.sql":  `CREATE TABLE users (id INTEGER);`,
		"002_later.sql": `CREATE TABLE later (id INTEGER);`,
	}))
	if _, err := newer.Up(); err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	older := newRunner(t, db, mapFS(map[string]string{
		"001_init.sql": `CREATE TABLE users (id INTEGER);`,
	}))
	if _, err := older.Check(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Check error = %v, want ErrSchemaTooNew", err)
	}
	if _, err := older.Up(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Up error = %v, want ErrSchemaTooNew", err)
	}
}

func TestNewRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": ""}, "expected NNN_name.sql"},
		{"missing name", map[string]string{"001_.sql": ""}, "expected NNN_name.sql"},
		{"zero version", map[string]string{"000_init.sql": ""}, "positive number"},
		{"non-numeric version", map[string]string{"abc_init.sql": ""}, "positive number"},
		{"duplicate version", map[string]string{"001_init.sql": "", "001_other.sql": ""}, "already used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(setupTestDB(t), SQLite, mapFS(tt.files))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestInsertPlaceholders(t *testing.T) {
	pg, err := New(nil, Postgres, mapFS(nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !strings.Contains(pg.insertSQL(), "$3") {
		t.Errorf("expected postgres placeholders, got %q", pg.insertSQL())
	}
	lite, _ := New(nil, SQLite, mapFS(nil))
	if strings.Contains(lite.insertSQL(), "$") {
		t.Errorf("expected sqlite placeholders, got %q", lite.insertSQL())
	}
	if pg.Latest() != 0 {
		t.Errorf("Latest with no files = %d", pg.Latest())
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		sub, err := fs.Sub(migrations.FS, dir)
		if err != nil {
			t.Fatalf("fs.Sub(%s) failed: %v", dir, err)
		}
		r, err := New(nil, SQLite, sub)
		if err != nil {
			t.Fatalf("%s migrations do not parse: %v", dir, err)
		}
		if r.Latest() != 2 {
			t.Errorf("%s Latest = %d, want 2", dir, r.Latest())
		}
	}

	sub, _ := fs.Sub(migrations.FS, "sqlite")
	db := setupTestDB(t)
	if _, err := newRunner(t, db, sub).Up(); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('a', 'b', '2024-01-01T00:00:00Z')"); err != nil {
		t.Errorf("insert into kv failed: %v", err)
	}
}
