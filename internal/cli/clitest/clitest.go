// Package clitest builds command contexts backed by throwaway stores.
package clitest

import (
	"bytes"
	"testing"
	"time"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/config"
	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/storage"
)

// Clock is 2024-01-01 08:30 local time
func Clock() time.Time {
	return time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local)
}

// New returns a loaded context over store and the buffer collecting its
// output. A nil store means a fresh MemoryStore.
func New(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	if store == nil {
		mem := storage.NewMemoryStore()
		if err := mem.Init(); err != nil {
			t.Fatalf("failed to initialize store: %v", err)
		}
		store = mem
	}

	var out bytes.Buffer
	ctx := &cli.Context{
		Config: config.Config{
			Storage: config.StorageConfig{Driver: constants.DriverMemory},
			Backup:  config.BackupConfig{Max: constants.MaxBackups},
		},
		Store: store,
		Out:   &out,
		Now:   Clock,
	}
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load context: %v", err)
	}
	return ctx, &out
}
