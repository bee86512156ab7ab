// Package errors formats command failures for the terminal.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lernplan/internal/backup"
	"github.com/julianstephens/lernplan/internal/keyring"
	"github.com/julianstephens/lernplan/internal/logger"
	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/storage/postgres"
)

// hints pairs well-known failures with the next step for the user
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'lernplan init' to create the study plan database"},
	{postgres.ErrEmbeddedCredentials, "store the connection string with 'lernplan keyring set', or use LERNPLAN_DB_CONNECTION or a .pgpass file"},
	{keyring.ErrNotFound, "store a connection string with 'lernplan keyring set'"},
	{keyring.ErrKeyringUnavailable, "set LERNPLAN_DB_CONNECTION instead of using the OS keyring"},
	{backup.ErrNoDatabase, "backups are only available for the sqlite driver after 'lernplan init'"},
}

// Hint returns a suggestion for err, or "" when there is none
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err and exits with code 1. A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
