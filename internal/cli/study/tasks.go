package study

import (
	"fmt"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/constants"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	doc := ctx.Tracker.Document()
	overall := ctx.Tracker.Overall()

	ctx.Println("German Learning Plan")
	if doc.Started() {
		ctx.Printf("  Started:   %s\n", *doc.StartDate)
	} else {
		ctx.Println("  Started:   not yet (run 'lernplan start')")
	}
	ctx.Printf("  Progress:  %d/%d days (%d%%)\n", overall.Completed, overall.Total, overall.Percent)

	next, ok := ctx.Tracker.NextIncomplete()
	if !ok {
		ctx.Println("\n✓ All tasks complete. Herzlichen Glückwunsch!")
		return nil
	}
	day, _ := ctx.Tracker.Day(next.Week, next.Day)
	ctx.Printf("\nNext up: Week %d, Day %d (%s)\n", next.Week, next.Day, ctx.Tracker.ScheduledDate(next.Week, next.Day))
	ctx.Printf("  %s [%s, %s]\n", day.Task, cli.FocusLabel(day.Focus), day.Level)
	ctx.Printf("  %d/%d subtasks done\n", day.CompletedSubtasks(), len(day.Subtasks))
	return nil
}

type TasksCmd struct {
	Week    int    `help:"Only show this week."`
	Focus   string `help:"Only show days with this focus (grammar, vocabulary, listening, speaking, writing)."`
	Pending bool   `help:"Hide completed days."`
}

func (c *TasksCmd) Run(ctx *cli.Context) error {
	focus, err := cli.ParseFocus(c.Focus)
	if err != nil {
		return err
	}

	shown := 0
	for _, w := range ctx.Tracker.Document().Weeks {
		if c.Week != 0 && w.Week != c.Week {
			continue
		}
		header := false
		for _, d := range w.Days {
			if focus != "" && d.Focus != focus {
				continue
			}
			if c.Pending && d.Completed {
				continue
			}
			if !header {
				ctx.Printf("Week %d: %s\n", w.Week, w.Goal)
				header = true
			}
			ctx.Printf("  %s D%d  %-6s  %-10s  %s\n",
				cli.StatusGlyph(d), d.Day, ctx.Tracker.ScheduledDate(w.Week, d.Day), cli.FocusLabel(d.Focus), d.Task)
			shown++
		}
	}
	if shown == 0 {
		ctx.Println("No tasks match.")
	}
	return nil
}

type ShowCmd struct {
	Week int `arg:"" help:"Week number."`
	Day  int `arg:"" help:"Day number."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	day, ok := ctx.Tracker.Day(c.Week, c.Day)
	if !ok {
		ctx.Println("Task details not found")
		return nil
	}

	ctx.Printf("Week %d, Day %d: %s\n", c.Week, c.Day, day.Task)
	ctx.Printf("Focus: %s   Level: %s   Scheduled: %s\n", cli.FocusLabel(day.Focus), day.Level, ctx.Tracker.ScheduledDate(c.Week, c.Day))

	lesson := day.LessonContent
	if lesson.Title != "" {
		ctx.Printf("\n%s\n", lesson.Title)
		printField(ctx, "Definition", lesson.Definition)
		printField(ctx, "Example", lesson.Example)
		printField(ctx, "Tips", lesson.Tips)
	}

	ctx.Println("\nSubtasks:")
	for i, s := range day.Subtasks {
		ctx.Printf("  %d. %s %s\n", i+1, cli.Checkbox(s.Completed), s.Description)
	}

	if len(day.Resources) > 0 {
		ctx.Println("\nResources:")
		for _, r := range day.Resources {
			ctx.Printf("  - %s: %s\n", r.Name, r.URL)
		}
	}

	if day.Notes != "" {
		ctx.Printf("\nNotes:\n  %s\n", day.Notes)
	}
	return nil
}

func printField(ctx *cli.Context, name, value string) {
	if value == "" {
		return
	}
	ctx.Printf("  %s: %s\n", name, value)
}

// scheduleLine is used by the report for weeks that have not begun
func scheduleLine(ctx *cli.Context, week int) string {
	first := ctx.Tracker.ScheduledDate(week, 1)
	if first == constants.NotScheduled {
		return first
	}
	return fmt.Sprintf("from %s", first)
}
