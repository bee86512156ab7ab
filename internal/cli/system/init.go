package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/curriculum"
	"github.com/julianstephens/lernplan/internal/persistence"
	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/storage/postgres"
	"github.com/julianstephens/lernplan/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete existing progress before initialization."`
	Source string `help:"Database path, JSON file, or connection string to copy progress from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized lernplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("  Migrated %d items\n", n)
	}

	seeded, err := seed(ctx.Store)
	if err != nil {
		return err
	}
	if seeded {
		ctx.Println("  Seeded the default 4-week curriculum")
	}

	ctx.Tracker = nil
	return ctx.Load()
}

// wipe removes the existing database file, or every key for providers
// without one
func (c *InitCmd) wipe(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
	default:
		if err := ctx.Store.Load(); err != nil {
			if errors.Is(err, storage.ErrNotInitialized) {
				return nil
			}
			return err
		}
		keys, err := ctx.Store.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := ctx.Store.Delete(k); err != nil {
				return fmt.Errorf("failed to delete %s: %w", k, err)
			}
		}
		ctx.Printf("Deleted %d existing items\n", len(keys))
		return nil
	}

	if c.Source != "" && samePath(path, c.Source) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
	}
	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func openSource(source string) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(source):
		if _, err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use %s, the keyring, or .pgpass instead", constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(source), nil
	case strings.EqualFold(filepath.Ext(source), ".json"):
		return storage.NewJSONStore(source), nil
	default:
		return sqlite.NewStore(source), nil
	}
}

// migrateData copies every key of the source store into ctx.Store
func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	source, err := openSource(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	keys, err := source.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source items: %w", err)
	}
	for _, k := range keys {
		v, err := source.Get(k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", k, err)
		}
		if err := ctx.Store.Set(k, v); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", k, err)
		}
	}
	return len(keys), nil
}

// seed writes the default curriculum when the store holds no document
func seed(store storage.Provider) (bool, error) {
	adapter := persistence.New(store)
	if _, err := adapter.Decode(); !errors.Is(err, persistence.ErrNoDocument) {
		return false, nil
	}
	var writeErr error
	adapter.OnWriteError = func(_ string, err error) { writeErr = err }
	adapter.Save(curriculum.Default())
	if writeErr != nil {
		return false, fmt.Errorf("failed to seed default curriculum: %w", writeErr)
	}
	return true, nil
}
