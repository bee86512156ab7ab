// Package tracker holds the learner's current progress document and keeps
// the saved copy in step with it.
package tracker

import (
	"time"

	"github.com/julianstephens/lernplan/internal/curriculum"
	"github.com/julianstephens/lernplan/internal/models"
	"github.com/julianstephens/lernplan/internal/persistence"
	"github.com/julianstephens/lernplan/internal/progress"
	"github.com/julianstephens/lernplan/internal/stats"
)

// Tracker is not safe for concurrent use. Callers drive it from a single
// goroutine (one CLI command or the TUI update loop).
type Tracker struct {
	adapter  *persistence.Adapter
	doc      models.ProgressDocument
	darkMode bool
	now      func() time.Time
}

type Option func(*Tracker)

// WithClock replaces time.Now for StartPlan
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New loads the saved state through adapter.
func New(adapter *persistence.Adapter, opts ...Option) *Tracker {
	t := &Tracker{
		adapter: adapter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.doc = adapter.Load()
	t.darkMode = adapter.DarkMode()
	return t
}

// Document returns the current document. Treat it as read-only.
func (t *Tracker) Document() models.ProgressDocument {
	return t.doc
}

func (t *Tracker) apply(doc models.ProgressDocument) {
	t.doc = doc
	t.adapter.Save(doc)
}

func (t *Tracker) StartPlan() {
	t.apply(progress.StartPlan(t.doc, t.now()))
}

// ToggleSubtask flips a subtask. subtaskIndex is zero-based.
func (t *Tracker) ToggleSubtask(weekNum, dayNum, subtaskIndex int) {
	t.apply(progress.ToggleSubtask(t.doc, weekNum, dayNum, subtaskIndex))
}

func (t *Tracker) UpdateNotes(weekNum, dayNum int, text string) {
	t.apply(progress.UpdateNotes(t.doc, weekNum, dayNum, text))
}

func (t *Tracker) UpdateGoal(weekNum int, text string) {
	t.apply(progress.UpdateGoal(t.doc, weekNum, text))
}

// Reset restores the default curriculum and removes the saved document.
// The in-memory document is reset even if clearing storage fails.
func (t *Tracker) Reset() error {
	t.doc = progress.ResetProgress()
	return t.adapter.Clear()
}

// Day looks up a day of the current document
func (t *Tracker) Day(weekNum, dayNum int) (models.Day, bool) {
	return t.doc.FindDay(weekNum, dayNum)
}

func (t *Tracker) Week(weekNum int) (models.Week, bool) {
	return t.doc.FindWeek(weekNum)
}

func (t *Tracker) Overall() stats.Overall {
	return stats.OverallStats(t.doc)
}

func (t *Tracker) ByFocus() []stats.FocusCount {
	return stats.ByFocus(t.doc)
}

func (t *Tracker) ByWeek() []stats.WeekCount {
	return stats.ByWeek(t.doc)
}

func (t *Tracker) NextIncomplete() (stats.Position, bool) {
	return stats.NextIncomplete(t.doc)
}

func (t *Tracker) ScheduledDate(weekNum, dayNum int) string {
	return stats.ScheduledDate(t.doc.StartDate, weekNum, dayNum)
}

// Vocabulary returns the static vocabulary list
func (t *Tracker) Vocabulary() []models.VocabularyItem {
	return curriculum.Vocabulary()
}

func (t *Tracker) DarkMode() bool {
	return t.darkMode
}

func (t *Tracker) SetDarkMode(on bool) {
	t.darkMode = on
	t.adapter.SetDarkMode(on)
}

// ToggleDarkMode flips the display preference and returns the new value
func (t *Tracker) ToggleDarkMode() bool {
	t.SetDarkMode(!t.darkMode)
	return t.darkMode
}

// OnWriteError replaces the handler told about failed saves
func (t *Tracker) OnWriteError(fn func(key string, err error)) {
	t.adapter.OnWriteError = fn
}
