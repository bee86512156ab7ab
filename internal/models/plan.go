package models

// Focus is the skill area a study day trains
type Focus string

const (
	FocusGrammar    Focus = "grammar"
	FocusVocabulary Focus = "vocabulary"
	FocusListening  Focus = "listening"
	FocusSpeaking   Focus = "speaking"
	FocusWriting    Focus = "writing"
)

// Focuses lists every known focus area in enum order
var Focuses = []Focus{FocusGrammar, FocusVocabulary, FocusListening, FocusSpeaking, FocusWriting}

// Valid reports whether f is one of the known focus areas
func (f Focus) Valid() bool {
	for _, known := range Focuses {
		if f == known {
			return true
		}
	}
	return false
}

type Subtask struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type LessonContent struct {
	Title      string `json:"title"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Tips       string `json:"tips"`
}

// Day is a single study day. Completed mirrors the subtask state and is only
// written by the progress package.
type Day struct {
	Day           int           `json:"day"`
	Task          string        `json:"task"`
	Focus         Focus         `json:"focus"`
	Level         string        `json:"level"` // CEFR label, e.g. "A1"
	LessonContent LessonContent `json:"lessonContent"`
	Subtasks      []Subtask     `json:"subtasks"`
	Completed     bool          `json:"completed"`
	Resources     []Resource    `json:"resources"`
	Notes         string        `json:"notes"`
}

// IsComplete computes the derived completion flag from the subtasks.
// A day without subtasks is never complete.
func (d Day) IsComplete() bool {
	if len(d.Subtasks) == 0 {
		return false
	}
	for _, s := range d.Subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

// CompletedSubtasks returns how many subtasks of the day are done
func (d Day) CompletedSubtasks() int {
	n := 0
	for _, s := range d.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

type Week struct {
	Week int    `json:"week"`
	Goal string `json:"goal"`
	Days []Day  `json:"days"`
}

// FindDay returns the day with the given number, or false if the week has none
func (w Week) FindDay(dayNum int) (Day, bool) {
	for _, d := range w.Days {
		if d.Day == dayNum {
			return d, true
		}
	}
	return Day{}, false
}

// ProgressDocument is the full curriculum plus the learner's edits
type ProgressDocument struct {
	StartDate *string `json:"startDate"` // YYYY-MM-DD, nil until the plan is started
	Weeks     []Week  `json:"weeks"`
}

// FindWeek returns the week with the given number
func (p ProgressDocument) FindWeek(weekNum int) (Week, bool) {
	for _, w := range p.Weeks {
		if w.Week == weekNum {
			return w, true
		}
	}
	return Week{}, false
}

// FindDay returns the day identified by week and day number
func (p ProgressDocument) FindDay(weekNum, dayNum int) (Day, bool) {
	w, ok := p.FindWeek(weekNum)
	if !ok {
		return Day{}, false
	}
	return w.FindDay(dayNum)
}

// Started reports whether the plan has a start date
func (p ProgressDocument) Started() bool {
	return p.StartDate != nil && *p.StartDate != ""
}

// Clone returns a deep copy of the document
func (p ProgressDocument) Clone() ProgressDocument {
	out := ProgressDocument{}
	if p.StartDate != nil {
		start := *p.StartDate
		out.StartDate = &start
	}
	if p.Weeks == nil {
		return out
	}
	out.Weeks = make([]Week, len(p.Weeks))
	for i, w := range p.Weeks {
		out.Weeks[i] = w
		if w.Days == nil {
			continue
		}
		out.Weeks[i].Days = make([]Day, len(w.Days))
		for j, d := range w.Days {
			if d.Subtasks != nil {
				subtasks := make([]Subtask, len(d.Subtasks))
				copy(subtasks, d.Subtasks)
				d.Subtasks = subtasks
			}
			if d.Resources != nil {
				resources := make([]Resource, len(d.Resources))
				copy(resources, d.Resources)
				d.Resources = resources
			}
			out.Weeks[i].Days[j] = d
		}
	}
	return out
}
