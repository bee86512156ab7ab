// Package stats derives read-only progress figures from a ProgressDocument.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/models"
)

// Overall summarizes completion across the whole plan
type Overall struct {
	Total     int
	Completed int
	Percent   int
}

// FocusCount is the completion tally of one focus area
type FocusCount struct {
	Focus     models.Focus
	Total     int
	Completed int
}

// Percent returns the rounded completion percentage of the focus area
func (c FocusCount) Percent() int {
	return percent(c.Completed, c.Total)
}

// WeekCount is the completion tally of one week
type WeekCount struct {
	Week      int
	Goal      string
	Total     int
	Completed int
	Percent   int
}

// Position identifies a study day
type Position struct {
	Week int
	Day  int
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// OverallStats counts all days and completed days
func OverallStats(doc models.ProgressDocument) Overall {
	var o Overall
	for _, w := range doc.Weeks {
		for _, d := range w.Days {
			o.Total++
			if d.Completed {
				o.Completed++
			}
		}
	}
	o.Percent = percent(o.Completed, o.Total)
	return o
}

// ByFocus groups days by focus. Entries appear in the order each focus is
// first seen scanning weeks and days top to bottom. Focus areas without days
// are absent.
func ByFocus(doc models.ProgressDocument) []FocusCount {
	var counts []FocusCount
	index := make(map[models.Focus]int)
	for _, w := range doc.Weeks {
		for _, d := range w.Days {
			i, ok := index[d.Focus]
			if !ok {
				i = len(counts)
				index[d.Focus] = i
				counts = append(counts, FocusCount{Focus: d.Focus})
			}
			counts[i].Total++
			if d.Completed {
				counts[i].Completed++
			}
		}
	}
	return counts
}

// FocusMap indexes focus counts by focus
func FocusMap(counts []FocusCount) map[models.Focus]FocusCount {
	m := make(map[models.Focus]FocusCount, len(counts))
	for _, c := range counts {
		m[c.Focus] = c
	}
	return m
}

// ByWeek tallies each week in document order
func ByWeek(doc models.ProgressDocument) []WeekCount {
	counts := make([]WeekCount, 0, len(doc.Weeks))
	for _, w := range doc.Weeks {
		c := WeekCount{Week: w.Week, Goal: w.Goal, Total: len(w.Days)}
		for _, d := range w.Days {
			if d.Completed {
				c.Completed++
			}
		}
		c.Percent = percent(c.Completed, c.Total)
		counts = append(counts, c)
	}
	return counts
}

// NextIncomplete returns the first incomplete day in curriculum order:
// ascending week number, then ascending day number.
func NextIncomplete(doc models.ProgressDocument) (Position, bool) {
	weeks := make([]models.Week, len(doc.Weeks))
	copy(weeks, doc.Weeks)
	sort.SliceStable(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })

	for _, w := range weeks {
		days := make([]models.Day, len(w.Days))
		copy(days, w.Days)
		sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })

		for _, d := range days {
			if !d.Completed {
				return Position{Week: w.Week, Day: d.Day}, true
			}
		}
	}
	return Position{}, false
}

// lessThan compares completion ratios exactly, without rounding
func lessThan(a, b FocusCount) bool {
	return a.Completed*b.Total < b.Completed*a.Total
}

// WeakestFocus returns the focus with the lowest completion ratio. Ties go to
// the earliest entry.
func WeakestFocus(counts []FocusCount) (FocusCount, bool) {
	if len(counts) == 0 {
		return FocusCount{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if lessThan(c, best) {
			best = c
		}
	}
	return best, true
}

// StrongestFocus returns the focus with the highest completion ratio. Ties go
// to the earliest entry.
func StrongestFocus(counts []FocusCount) (FocusCount, bool) {
	if len(counts) == 0 {
		return FocusCount{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if lessThan(best, c) {
			best = c
		}
	}
	return best, true
}

// ScheduledTime returns the calendar date of a study day. Each week advances
// seven calendar days regardless of how many study days it holds.
func ScheduledTime(startDate *string, weekNum, dayNum int) (time.Time, bool) {
	if startDate == nil || *startDate == "" {
		return time.Time{}, false
	}
	start, err := time.ParseInLocation(constants.DateFormat, *startDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	offset := (weekNum-1)*constants.DaysPerWeekStride + (dayNum - 1)
	return start.AddDate(0, 0, offset), true
}

// ScheduledDate formats the scheduled date of a study day as e.g. "Jan 5",
// or "Not Scheduled" before the plan is started.
func ScheduledDate(startDate *string, weekNum, dayNum int) string {
	t, ok := ScheduledTime(startDate, weekNum, dayNum)
	if !ok {
		return constants.NotScheduled
	}
	return t.Format(constants.ScheduleFormat)
}
