package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateWeek    ConflictType = "duplicate_week"
	ConflictDuplicateDay     ConflictType = "duplicate_day"
	ConflictInvalidNumber    ConflictType = "invalid_number"
	ConflictUnknownFocus     ConflictType = "unknown_focus"
	ConflictNoSubtasks       ConflictType = "no_subtasks"
	ConflictStaleCompletion  ConflictType = "stale_completion"
	ConflictInvalidStartDate ConflictType = "invalid_start_date"
	ConflictOrphanVocabulary ConflictType = "orphan_vocabulary"
	ConflictEmptyVocabulary  ConflictType = "empty_vocabulary"
)

// Conflict is one problem found in a document or vocabulary list
type Conflict struct {
	Type        ConflictType
	Description string
	Week        int // 0 when not tied to a week
	Day         int // 0 when not tied to a day
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns how many conflicts have type t
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, week, day int, format string, args ...interface{}) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Week:        week,
		Day:         day,
	})
}

// Validator checks curriculum documents and vocabulary lists
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateDocument checks the structure of a progress document: unique
// positive week and day numbers, known focus values, at least one subtask
// per day and a completion flag that agrees with the subtasks.
func (v *Validator) ValidateDocument(doc models.ProgressDocument) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if doc.StartDate != nil && *doc.StartDate != "" {
		if _, err := time.Parse(constants.DateFormat, *doc.StartDate); err != nil {
			result.add(ConflictInvalidStartDate, 0, 0, "Start date %q is not a YYYY-MM-DD date", *doc.StartDate)
		}
	}

	seenWeeks := make(map[int]bool)
	for _, w := range doc.Weeks {
		if w.Week <= 0 {
			result.add(ConflictInvalidNumber, w.Week, 0, "Week number %d must be positive", w.Week)
		}
		if seenWeeks[w.Week] {
			result.add(ConflictDuplicateWeek, w.Week, 0, "Week %d appears more than once", w.Week)
		}
		seenWeeks[w.Week] = true

		seenDays := make(map[int]bool)
		for _, d := range w.Days {
			if d.Day <= 0 {
				result.add(ConflictInvalidNumber, w.Week, d.Day, "Week %d has day number %d, which must be positive", w.Week, d.Day)
			}
			if seenDays[d.Day] {
				result.add(ConflictDuplicateDay, w.Week, d.Day, "Week %d day %d appears more than once", w.Week, d.Day)
			}
			seenDays[d.Day] = true

			if !d.Focus.Valid() {
				result.add(ConflictUnknownFocus, w.Week, d.Day, "Week %d day %d has unknown focus %q", w.Week, d.Day, d.Focus)
			}
			if len(d.Subtasks) == 0 {
				result.add(ConflictNoSubtasks, w.Week, d.Day, "Week %d day %d (%s) has no subtasks", w.Week, d.Day, d.Task)
			}
			if d.Completed != d.IsComplete() {
				result.add(ConflictStaleCompletion, w.Week, d.Day, "Week %d day %d completion flag disagrees with its subtasks", w.Week, d.Day)
			}
		}
	}

	return result
}

// ValidateVocabulary checks that every item has text, a known focus and a
// week that exists in doc.
func (v *Validator) ValidateVocabulary(items []models.VocabularyItem, doc models.ProgressDocument) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for i, item := range items {
		if strings.TrimSpace(item.Word) == "" || strings.TrimSpace(item.Translation) == "" {
			result.add(ConflictEmptyVocabulary, item.Week, 0, "Vocabulary item %d is missing its word or translation", i+1)
		}
		if !item.Focus.Valid() {
			result.add(ConflictUnknownFocus, item.Week, 0, "Vocabulary item %q has unknown focus %q", item.Word, item.Focus)
		}
		if _, ok := doc.FindWeek(item.Week); !ok {
			result.add(ConflictOrphanVocabulary, item.Week, 0, "Vocabulary item %q belongs to week %d, which is not in the plan", item.Word, item.Week)
		}
	}

	return result
}
