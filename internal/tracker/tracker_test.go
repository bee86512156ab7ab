package tracker

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/lernplan/internal/curriculum"
	"github.com/julianstephens/lernplan/internal/persistence"
	"github.com/julianstephens/lernplan/internal/storage"
)

func newTracker(t *testing.T, opts ...Option) (*Tracker, *persistence.Adapter) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	adapter := persistence.New(store)
	return New(adapter, opts...), adapter
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local)
}

func TestNewStartsFromDefaults(t *testing.T) {
	tr, _ := newTracker(t)
	if !reflect.DeepEqual(tr.Document(), curriculum.Default()) {
		t.Error("fresh tracker should hold the default curriculum")
	}
	if tr.DarkMode() {
		t.Error("fresh tracker should be in light mode")
	}
}

func TestMutationsArePersisted(t *testing.T) {
	tr, adapter := newTracker(t, WithClock(fixedClock))

	tr.StartPlan()
	tr.ToggleSubtask(1, 1, 0)
	tr.UpdateNotes(1, 1, "sein ist unregelmäßig")
	tr.UpdateGoal(1, "Grundlagen")

	saved, err := adapter.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(saved, tr.Document()) {
		t.Error("saved document differs from tracker document")
	}
	if got := tr.ScheduledDate(2, 3); got != "Jan 10" {
		t.Errorf("ScheduledDate(2, 3) = %q, want Jan 10", got)
	}
	day, ok := tr.Day(1, 1)
	if !ok || day.Notes != "sein ist unregelmäßig" || !day.Subtasks[0].Completed {
		t.Errorf("unexpected day 1.1: %+v", day)
	}
	week, ok := tr.Week(1)
	if !ok || week.Goal != "Grundlagen" {
		t.Errorf("unexpected week 1: %+v", week)
	}
}

func TestReloadRestoresState(t *testing.T) {
	tr, adapter := newTracker(t)
	for i := 0; i < 3; i++ {
		tr.ToggleSubtask(1, 1, i)
	}
	tr.SetDarkMode(true)

	reloaded := New(adapter)
	if !reflect.DeepEqual(reloaded.Document(), tr.Document()) {
		t.Error("reloaded document differs")
	}
	if !reloaded.DarkMode() {
		t.Error("dark mode not restored")
	}
	if got := reloaded.Overall().Completed; got != 1 {
		t.Errorf("Overall().Completed = %d, want 1", got)
	}
}

func TestReset(t *testing.T) {
	tr, adapter := newTracker(t, WithClock(fixedClock))
	tr.StartPlan()
	tr.ToggleSubtask(2, 2, 1)
	tr.UpdateNotes(3, 1, "notiz")

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	doc := tr.Document()
	if doc.StartDate != nil {
		t.Error("start date should be cleared")
	}
	for _, w := range doc.Weeks {
		for _, d := range w.Days {
			if d.Completed || d.Notes != "" {
				t.Errorf("day %d.%d not reset: %+v", w.Week, d.Day, d)
			}
		}
	}
	if _, err := adapter.Decode(); err == nil {
		t.Error("saved document should be removed after reset")
	}
}

func TestStatsAccessors(t *testing.T) {
	tr, _ := newTracker(t)

	next, ok := tr.NextIncomplete()
	if !ok || next.Week != 1 || next.Day != 1 {
		t.Errorf("NextIncomplete = %+v, %v", next, ok)
	}
	if got := tr.Overall(); got.Total != 20 || got.Completed != 0 {
		t.Errorf("Overall = %+v", got)
	}
	if got := len(tr.ByWeek()); got != 4 {
		t.Errorf("len(ByWeek) = %d, want 4", got)
	}
	if got := len(tr.ByFocus()); got != 5 {
		t.Errorf("len(ByFocus) = %d, want 5", got)
	}
	if len(tr.Vocabulary()) == 0 {
		t.Error("expected vocabulary items")
	}
}

func TestToggleDarkMode(t *testing.T) {
	tr, adapter := newTracker(t)
	if !tr.ToggleDarkMode() {
		t.Error("first toggle should enable dark mode")
	}
	if !adapter.DarkMode() {
		t.Error("dark mode should be persisted")
	}
	if tr.ToggleDarkMode() {
		t.Error("second toggle should disable dark mode")
	}
}

func TestOnWriteError(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore()}
	_ = store.Init()
	tr := New(persistence.New(store))

	var keys []string
	tr.OnWriteError(func(key string, err error) {
		keys = append(keys, key)
	})
	tr.ToggleSubtask(1, 1, 0)
	tr.SetDarkMode(true)

	if len(keys) != 2 || keys[0] != "germanLearningData" || keys[1] != "darkMode" {
		t.Errorf("reported keys = %v", keys)
	}
	// The in-memory state still changes
	if day, _ := tr.Day(1, 1); !day.Subtasks[0].Completed {
		t.Error("toggle lost after failed save")
	}
}

type failingStore struct {
	*storage.MemoryStore
}

func (s *failingStore) Set(key, value string) error {
	return errors.New("disk full")
}
