package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/storage/postgres"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped sentinel gets a hint",
			err:      fmt.Errorf("failed to open store: %w", storage.ErrNotInitialized),
			expected: "Error: failed to open store: storage not initialized, run 'lernplan init' first\nHint: run 'lernplan init' to create the study plan database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if Hint(errors.New("plain")) != "" {
		t.Error("plain errors have no hint")
	}
	if !strings.Contains(Hint(postgres.ErrEmbeddedCredentials), "keyring") {
		t.Error("embedded credentials hint should mention the keyring")
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{"simple message", "something went wrong", nil, "Error: something went wrong"},
		{"formatted message", "week %d has no day %d", []interface{}{2, 7}, "Error: week 2 has no day 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatf(tt.format, tt.args...); got != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.expected)
			}
		})
	}
}

// runHelper re-runs the test binary with env set and returns its stderr and exit error
func runHelper(t *testing.T, name, env string) (string, error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run="+name)
	cmd.Env = append(os.Environ(), env+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

func TestFatal(t *testing.T) {
	if os.Getenv("LERNPLAN_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	stderr, err := runHelper(t, "TestFatal$", "LERNPLAN_TEST_FATAL")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr, "Error: test error") {
		t.Errorf("Fatal() stderr = %q", stderr)
	}
}

func TestFatalNilError(t *testing.T) {
	if os.Getenv("LERNPLAN_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	if _, err := runHelper(t, "TestFatalNilError", "LERNPLAN_TEST_FATAL_NIL"); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("LERNPLAN_TEST_FATALF") == "1" {
		Fatalf("week %d not found", 9)
		return
	}

	stderr, err := runHelper(t, "TestFatalf", "LERNPLAN_TEST_FATALF")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Fatalf() did not exit with code 1: %v", err)
	}
	if !strings.Contains(stderr, "Error: week 9 not found") {
		t.Errorf("Fatalf() stderr = %q", stderr)
	}
}
