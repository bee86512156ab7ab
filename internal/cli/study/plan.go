package study

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/lernplan/internal/cli"
)

type StartCmd struct{}

func (c *StartCmd) Run(ctx *cli.Context) error {
	doc := ctx.Tracker.Document()
	restart := doc.Started()
	ctx.Tracker.StartPlan()
	start := *ctx.Tracker.Document().StartDate
	if restart {
		ctx.Printf("✓ Plan restarted on %s\n", start)
	} else {
		ctx.Printf("✓ Plan started on %s\n", start)
	}
	ctx.Printf("  Week 1, Day 1 is scheduled for %s\n", ctx.Tracker.ScheduledDate(1, 1))
	return nil
}

type ToggleCmd struct {
	Week    int `arg:"" help:"Week number."`
	Day     int `arg:"" help:"Day number."`
	Subtask int `arg:"" help:"Subtask number, starting at 1."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	day, ok := ctx.Tracker.Day(c.Week, c.Day)
	if !ok {
		return fmt.Errorf("no task for week %d day %d", c.Week, c.Day)
	}
	if c.Subtask < 1 || c.Subtask > len(day.Subtasks) {
		return fmt.Errorf("subtask %d out of range (day has %d)", c.Subtask, len(day.Subtasks))
	}

	ctx.Tracker.ToggleSubtask(c.Week, c.Day, c.Subtask-1)

	day, _ = ctx.Tracker.Day(c.Week, c.Day)
	sub := day.Subtasks[c.Subtask-1]
	ctx.Printf("%s %s\n", cli.Checkbox(sub.Completed), sub.Description)
	if day.Completed {
		ctx.Printf("✓ Week %d Day %d complete\n", c.Week, c.Day)
	}
	return nil
}

// errInvalidText rejects input that JSON encoding would rewrite to U+FFFD
var errInvalidText = errors.New("text is not valid UTF-8")

type NoteCmd struct {
	Week int      `arg:"" help:"Week number."`
	Day  int      `arg:"" help:"Day number."`
	Text []string `arg:"" optional:"" help:"Note text. Omit to clear the note."`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Tracker.Day(c.Week, c.Day); !ok {
		return fmt.Errorf("no task for week %d day %d", c.Week, c.Day)
	}
	text := strings.Join(c.Text, " ")
	if !utf8.ValidString(text) {
		return errInvalidText
	}
	ctx.Tracker.UpdateNotes(c.Week, c.Day, text)
	if text == "" {
		ctx.Printf("✓ Cleared notes for week %d day %d\n", c.Week, c.Day)
	} else {
		ctx.Printf("✓ Saved notes for week %d day %d\n", c.Week, c.Day)
	}
	return nil
}

type GoalCmd struct {
	Week int      `arg:"" help:"Week number."`
	Text []string `arg:"" help:"New goal for the week."`
}

func (c *GoalCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Tracker.Week(c.Week); !ok {
		return fmt.Errorf("no week %d in the plan", c.Week)
	}
	goal := strings.Join(c.Text, " ")
	if !utf8.ValidString(goal) {
		return errInvalidText
	}
	ctx.Tracker.UpdateGoal(c.Week, goal)
	ctx.Printf("✓ Week %d goal: %s\n", c.Week, goal)
	return nil
}

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := cli.Confirm("Reset all progress? Completed subtasks, notes, goals and the start date are lost.", "Reset")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}
	if err := ctx.Tracker.Reset(); err != nil {
		return err
	}
	ctx.Println("✓ Progress reset to the default curriculum")
	return nil
}
