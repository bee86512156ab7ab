package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lernplan/internal/backup"
	"github.com/julianstephens/lernplan/internal/config"
	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/keyring"
	"github.com/julianstephens/lernplan/internal/logger"
	"github.com/julianstephens/lernplan/internal/models"
	"github.com/julianstephens/lernplan/internal/persistence"
	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/storage/postgres"
	"github.com/julianstephens/lernplan/internal/storage/sqlite"
	"github.com/julianstephens/lernplan/internal/tracker"
)

type Context struct {
	Config  config.Config
	Store   storage.Provider
	Tracker *tracker.Tracker

	// Out receives command output, os.Stdout when nil
	Out io.Writer
	// Now is the clock used for StartPlan, time.Now when nil
	Now func() time.Time
}

// Writer returns the command output stream
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Load opens the store and hydrates the tracker. Calling it again is a no-op.
func (c *Context) Load() error {
	if c.Tracker != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.Tracker = c.newTracker()
	return nil
}

func (c *Context) newTracker() *tracker.Tracker {
	adapter := persistence.New(c.Store)
	adapter.OnWriteError = func(key string, err error) {
		fmt.Fprintf(os.Stderr, "Warning: failed to save %s: %v\n", key, err)
	}
	var opts []tracker.Option
	if c.Now != nil {
		opts = append(opts, tracker.WithClock(c.Now))
	}
	return tracker.New(adapter, opts...)
}

// BackupManager returns a manager for SQLite stores and nil for the others
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath(), backup.WithMaxBackups(c.Config.Backup.Max))
}

// PerformAutomaticBackup creates at most one backup per day and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backup.OnStart {
		return
	}
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.BackupIfStale(24 * time.Hour); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore builds the provider selected by cfg. It does not connect.
func OpenStore(cfg config.Config) (storage.Provider, error) {
	switch cfg.Storage.Driver {
	case constants.DriverSQLite, "":
		return sqlite.NewStore(config.ExpandPath(cfg.Storage.Path)), nil
	case constants.DriverJSON:
		return storage.NewJSONStore(config.ExpandPath(cfg.Storage.Path)), nil
	case constants.DriverMemory:
		return storage.NewMemoryStore(), nil
	case constants.DriverPostgres:
		dsn, trusted, err := resolveDSN(cfg)
		if err != nil {
			return nil, err
		}
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			// Passwords are fine when they come from the keyring or the environment
			if !trusted || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(dsn), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// resolveDSN returns the connection string and whether it came from a
// source that may hold a password.
func resolveDSN(cfg config.Config) (string, bool, error) {
	if cfg.Storage.DSN != "" {
		env := os.Getenv(constants.EnvDBConnection)
		return cfg.Storage.DSN, env != "" && env == cfg.Storage.DSN, nil
	}
	dsn, err := keyring.GetConnectionString()
	if err != nil {
		return "", false, fmt.Errorf("no PostgreSQL connection string configured: %w", err)
	}
	return dsn, true, nil
}

// Confirm asks a yes/no question on the terminal. Tests replace it.
var Confirm = func(title, affirmative string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// StatusGlyph renders a day's completion state
func StatusGlyph(d models.Day) string {
	if d.Completed {
		return "✓"
	}
	if d.CompletedSubtasks() > 0 {
		return "◐"
	}
	return "○"
}

// Checkbox renders a subtask marker
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// ParseFocus accepts a focus name in any case. An empty string means no filter.
func ParseFocus(s string) (models.Focus, error) {
	if s == "" {
		return "", nil
	}
	f := models.Focus(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		names := make([]string, len(models.Focuses))
		for i, known := range models.Focuses {
			names[i] = string(known)
		}
		return "", fmt.Errorf("unknown focus %q (expected one of %s)", s, strings.Join(names, ", "))
	}
	return f, nil
}

// FocusLabel capitalises a focus name for display
func FocusLabel(f models.Focus) string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}
