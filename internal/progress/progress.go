// Package progress implements the edit operations on a ProgressDocument.
//
// Every operation returns a new document and leaves its input untouched.
// Only the slices on the path to the edited field are copied; all other
// weeks, days and content are shared with the input.
package progress

import (
	"time"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/curriculum"
	"github.com/julianstephens/lernplan/internal/logger"
	"github.com/julianstephens/lernplan/internal/models"
)

// StartPlan sets the start date to now's local calendar date. An existing
// start date is overwritten, which reschedules every day.
func StartPlan(doc models.ProgressDocument, now time.Time) models.ProgressDocument {
	start := now.Local().Format(constants.DateFormat)
	doc.StartDate = &start
	return doc
}

// ToggleSubtask flips one subtask and recomputes the owning day's completion.
// subtaskIndex is zero-based. Unknown targets leave the document unchanged.
func ToggleSubtask(doc models.ProgressDocument, weekNum, dayNum, subtaskIndex int) models.ProgressDocument {
	wi, di, ok := locate(doc, weekNum, dayNum)
	if !ok {
		logger.Debug("Toggle ignored: day not found", "week", weekNum, "day", dayNum)
		return doc
	}
	day := doc.Weeks[wi].Days[di]
	if subtaskIndex < 0 || subtaskIndex >= len(day.Subtasks) {
		logger.Debug("Toggle ignored: subtask out of range", "week", weekNum, "day", dayNum, "index", subtaskIndex)
		return doc
	}

	subtasks := make([]models.Subtask, len(day.Subtasks))
	copy(subtasks, day.Subtasks)
	subtasks[subtaskIndex].Completed = !subtasks[subtaskIndex].Completed
	day.Subtasks = subtasks
	day.Completed = day.IsComplete()

	return replaceDay(doc, wi, di, day)
}

// UpdateNotes replaces the notes of a day. The text is stored as given.
func UpdateNotes(doc models.ProgressDocument, weekNum, dayNum int, text string) models.ProgressDocument {
	wi, di, ok := locate(doc, weekNum, dayNum)
	if !ok {
		logger.Debug("Note update ignored: day not found", "week", weekNum, "day", dayNum)
		return doc
	}
	day := doc.Weeks[wi].Days[di]
	day.Notes = text
	return replaceDay(doc, wi, di, day)
}

// UpdateGoal replaces the goal of a week
func UpdateGoal(doc models.ProgressDocument, weekNum int, text string) models.ProgressDocument {
	wi := weekIndex(doc, weekNum)
	if wi < 0 {
		logger.Debug("Goal update ignored: week not found", "week", weekNum)
		return doc
	}
	weeks := make([]models.Week, len(doc.Weeks))
	copy(weeks, doc.Weeks)
	weeks[wi].Goal = text
	doc.Weeks = weeks
	return doc
}

// ResetProgress returns the untouched default curriculum. Clearing persisted
// state is the caller's job.
func ResetProgress() models.ProgressDocument {
	return curriculum.Default()
}

// Normalize recomputes the derived completion flag of every day whose stored
// flag disagrees with its subtasks. Documents that are already consistent are
// returned as-is.
func Normalize(doc models.ProgressDocument) models.ProgressDocument {
	for wi, w := range doc.Weeks {
		for di, d := range w.Days {
			if d.Completed != d.IsComplete() {
				d.Completed = !d.Completed
				doc = replaceDay(doc, wi, di, d)
			}
		}
	}
	return doc
}

func weekIndex(doc models.ProgressDocument, weekNum int) int {
	for i, w := range doc.Weeks {
		if w.Week == weekNum {
			return i
		}
	}
	return -1
}

func locate(doc models.ProgressDocument, weekNum, dayNum int) (int, int, bool) {
	wi := weekIndex(doc, weekNum)
	if wi < 0 {
		return 0, 0, false
	}
	for di, d := range doc.Weeks[wi].Days {
		if d.Day == dayNum {
			return wi, di, true
		}
	}
	return 0, 0, false
}

// replaceDay copies the weeks slice and the target week's days slice, then
// stores day at the given position.
func replaceDay(doc models.ProgressDocument, wi, di int, day models.Day) models.ProgressDocument {
	weeks := make([]models.Week, len(doc.Weeks))
	copy(weeks, doc.Weeks)

	days := make([]models.Day, len(weeks[wi].Days))
	copy(days, weeks[wi].Days)
	days[di] = day

	weeks[wi].Days = days
	doc.Weeks = weeks
	return doc
}
