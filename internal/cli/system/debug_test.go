package system

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/lernplan/internal/cli/clitest"
	"github.com/julianstephens/lernplan/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := clitest.New(t, nil)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["driver"] != "memory" || got["path"] != "memory" {
		t.Errorf("unexpected output: %v", got)
	}
}

func TestDebugDumpCmd(t *testing.T) {
	ctx, out := clitest.New(t, nil)
	ctx.Tracker.UpdateGoal(1, "Hallo Welt")

	if err := (&DebugDumpCmd{Key: "germanLearningData"}).Run(ctx); err != nil {
		t.Fatalf("debug dump failed: %v", err)
	}
	var doc models.ProgressDocument
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("dump is not a progress document: %v", err)
	}
	if len(doc.Weeks) != 4 || doc.Weeks[0].Goal != "Hallo Welt" {
		t.Errorf("unexpected dump: %+v", doc.Weeks)
	}

	ctx.Tracker.SetDarkMode(true)
	out.Reset()
	if err := (&DebugDumpCmd{Key: "darkMode"}).Run(ctx); err != nil {
		t.Fatalf("debug dump failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "true" {
		t.Errorf("unexpected dump: %q", out.String())
	}

	if err := (&DebugDumpCmd{Key: "missing"}).Run(ctx); err == nil {
		t.Error("dump of a missing key should fail")
	}
}

func TestDebugKeysCmd(t *testing.T) {
	ctx, out := clitest.New(t, nil)
	ctx.Tracker.SetDarkMode(false)
	ctx.Tracker.StartPlan()

	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug keys failed: %v", err)
	}
	var keys []string
	if err := json.Unmarshal(out.Bytes(), &keys); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(keys) != 2 || keys[0] != "darkMode" || keys[1] != "germanLearningData" {
		t.Errorf("keys = %v", keys)
	}
}
