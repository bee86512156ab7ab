package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lernplan/internal/migration"
	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "lernplan.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return newTestStore(t)
	})
}

func TestLoadMissingDatabase(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load error = %v, want ErrNotInitialized", err)
	}
}

func TestNotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "lernplan.db"))
	if _, err := s.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get error = %v, want ErrNotLoaded", err)
	}
	if _, err := s.SchemaStatus(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("SchemaStatus error = %v, want ErrNotLoaded", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lernplan.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Set("darkMode", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	got, err := second.Get("darkMode")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "true" {
		t.Errorf("Get = %q, want true", got)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if got, _ := s.Get("k"); got != "v" {
		t.Errorf("value lost after re-init: %q", got)
	}

	st, err := s.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if st.Current != 2 || !st.UpToDate() || len(st.Applied) != 2 {
		t.Errorf("SchemaStatus = %+v, want two applied migrations", st)
	}
	if last, _ := st.Last(); last.Name != "kv_updated_index" || last.AppliedAt.IsZero() {
		t.Errorf("last migration = %+v", last)
	}
}

func TestGetDB(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "lernplan.db"))
	if s.GetDB() != nil {
		t.Error("GetDB should be nil before Init")
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()
	if s.GetDB() == nil {
		t.Error("GetDB should be non-nil after Init")
	}
}

func TestPragmas(t *testing.T) {
	s := newTestStore(t)

	var timeout, foreignKeys int
	if err := s.GetDB().QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout query failed: %v", err)
	}
	if timeout != busyTimeoutMS {
		t.Errorf("busy_timeout = %d, want %d", timeout, busyTimeoutMS)
	}
	if err := s.GetDB().QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("foreign_keys query failed: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("foreign_keys = %d, want 1", foreignKeys)
	}
}

func TestLoadFailureClosesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lernplan.db")

	// A file that exists but was never migrated
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := raw.Exec("CREATE TABLE other (id INTEGER)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	raw.Close()

	s := NewStore(path)
	for i := 0; i < 2; i++ {
		if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
			t.Errorf("Load #%d error = %v, want ErrNotInitialized", i+1, err)
		}
		if s.GetDB() != nil {
			t.Errorf("Load #%d left the database open", i+1)
		}
	}

	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database missing: %v", err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Errorf("Set after Init failed: %v", err)
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lernplan.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := first.GetDB().Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (99, 'future', '2030-01-01T00:00:00Z')"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	first.Close()

	s := NewStore(path)
	for i := 0; i < 2; i++ {
		if err := s.Load(); !errors.Is(err, migration.ErrSchemaTooNew) {
			t.Errorf("Load #%d error = %v, want ErrSchemaTooNew", i+1, err)
		}
	}
	if s.GetDB() != nil {
		t.Error("failed Load left the database open")
	}
}
