package settings

import (
	"strings"
	"testing"

	"github.com/julianstephens/lernplan/internal/cli/clitest"
	"github.com/julianstephens/lernplan/internal/persistence"
)

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := clitest.New(t, nil)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	for _, want := range []string{"Dark Mode:        off", "Storage Driver:   memory", "Max Backups:      14", "Storage Location: memory"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_DarkMode(t *testing.T) {
	tests := []struct {
		name string
		on   bool
	}{
		{"enable", true},
		{"disable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := clitest.New(t, nil)
			value := tt.on
			if err := (&SettingsCmd{DarkMode: &value}).Run(ctx); err != nil {
				t.Fatalf("settings failed: %v", err)
			}
			if ctx.Tracker.DarkMode() != tt.on {
				t.Errorf("DarkMode() = %v, want %v", ctx.Tracker.DarkMode(), tt.on)
			}
			if got := persistence.New(ctx.Store).DarkMode(); got != tt.on {
				t.Errorf("saved dark mode = %v, want %v", got, tt.on)
			}
			if strings.Contains(out.String(), "Current Settings") {
				t.Error("setting a value without --list should not print the listing")
			}
		})
	}
}
