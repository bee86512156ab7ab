package models

import (
	"reflect"
	"testing"
)

func sampleDocument() ProgressDocument {
	start := "2024-01-01"
	return ProgressDocument{
		StartDate: &start,
		Weeks: []Week{
			{
				Week: 1,
				Goal: "Greetings",
				Days: []Day{
					{
						Day:       1,
						Task:      "Articles",
						Focus:     FocusGrammar,
						Subtasks:  []Subtask{{Description: "Read"}, {Description: "Drill", Completed: true}},
						Resources: []Resource{{Name: "DW", URL: "https://learngerman.dw.com"}},
					},
					{Day: 2, Task: "Numbers", Focus: FocusVocabulary, Subtasks: []Subtask{}},
				},
			},
		},
	}
}

func TestDayIsComplete(t *testing.T) {
	tests := []struct {
		name     string
		subtasks []Subtask
		want     bool
	}{
		{"no subtasks", nil, false},
		{"empty subtasks", []Subtask{}, false},
		{"none done", []Subtask{{}, {}}, false},
		{"some done", []Subtask{{Completed: true}, {}}, false},
		{"all done", []Subtask{{Completed: true}, {Completed: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Day{Subtasks: tt.subtasks}
			if got := d.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocusValid(t *testing.T) {
	for _, f := range Focuses {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if Focus("reading").Valid() {
		t.Error("unknown focus reported as valid")
	}
}

func TestFindDay(t *testing.T) {
	doc := sampleDocument()

	if d, ok := doc.FindDay(1, 2); !ok || d.Task != "Numbers" {
		t.Errorf("FindDay(1, 2) = %+v, %v", d, ok)
	}
	if _, ok := doc.FindDay(1, 9); ok {
		t.Error("FindDay(1, 9) should not exist")
	}
	if _, ok := doc.FindDay(3, 1); ok {
		t.Error("FindDay(3, 1) should not exist")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	if !reflect.DeepEqual(doc, clone) {
		t.Fatalf("clone differs from original")
	}

	clone.Weeks[0].Days[0].Subtasks[0].Completed = true
	clone.Weeks[0].Goal = "changed"
	*clone.StartDate = "2030-01-01"

	if doc.Weeks[0].Days[0].Subtasks[0].Completed {
		t.Error("mutating clone subtask leaked into original")
	}
	if doc.Weeks[0].Goal != "Greetings" {
		t.Error("mutating clone goal leaked into original")
	}
	if *doc.StartDate != "2024-01-01" {
		t.Error("mutating clone start date leaked into original")
	}
	if clone.Weeks[0].Days[1].Subtasks == nil {
		t.Error("clone turned an empty subtask slice into nil")
	}
}

func TestStarted(t *testing.T) {
	var doc ProgressDocument
	if doc.Started() {
		t.Error("zero document should not be started")
	}
	empty := ""
	doc.StartDate = &empty
	if doc.Started() {
		t.Error("empty start date should not count as started")
	}
	start := "2024-01-01"
	doc.StartDate = &start
	if !doc.Started() {
		t.Error("document with start date should be started")
	}
}
