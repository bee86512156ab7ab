package study

import (
	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/stats"
)

type ReportCmd struct{}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	overall := ctx.Tracker.Overall()
	ctx.Println("Progress Report")
	ctx.Printf("  Overall: %d/%d days (%d%%)\n", overall.Completed, overall.Total, overall.Percent)

	ctx.Println("\nBy week:")
	for _, w := range ctx.Tracker.ByWeek() {
		ctx.Printf("  Week %d  %d/%d (%3d%%)  %s  [%s]\n", w.Week, w.Completed, w.Total, w.Percent, w.Goal, scheduleLine(ctx, w.Week))
	}

	counts := ctx.Tracker.ByFocus()
	ctx.Println("\nBy focus:")
	for _, fc := range counts {
		ctx.Printf("  %-10s  %d/%d (%3d%%)\n", cli.FocusLabel(fc.Focus), fc.Completed, fc.Total, fc.Percent())
	}

	strongest, ok := stats.StrongestFocus(counts)
	if !ok {
		return nil
	}
	weakest, _ := stats.WeakestFocus(counts)
	ctx.Println("\nInsights:")
	ctx.Printf("  Strongest area: %s (%d%%)\n", cli.FocusLabel(strongest.Focus), strongest.Percent())
	ctx.Printf("  Needs work:     %s (%d%%)\n", cli.FocusLabel(weakest.Focus), weakest.Percent())

	switch {
	case overall.Total > 0 && overall.Completed == overall.Total:
		ctx.Println("\nRecommendation: the plan is complete. Review the flashcards to keep the vocabulary fresh.")
	case overall.Completed == 0:
		ctx.Println("\nRecommendation: start with Week 1, Day 1.")
	default:
		ctx.Printf("\nRecommendation: spend extra time on %s.\n", cli.FocusLabel(weakest.Focus))
	}
	return nil
}
