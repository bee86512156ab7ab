package study

import (
	"sort"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/vocab"
)

type VocabCmd struct {
	Week   int    `help:"Only show words from this week."`
	Focus  string `help:"Only show words with this focus."`
	Search string `short:"s" help:"Case-insensitive search over word and translation."`
}

func (c *VocabCmd) Run(ctx *cli.Context) error {
	focus, err := cli.ParseFocus(c.Focus)
	if err != nil {
		return err
	}

	items := vocab.Apply(ctx.Tracker.Vocabulary(), vocab.Filter{Week: c.Week, Focus: focus, Query: c.Search})
	if len(items) == 0 {
		ctx.Println("No vocabulary matches.")
		return nil
	}

	grouped := vocab.ByWeek(items)
	weeks := make([]int, 0, len(grouped))
	for w := range grouped {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	for _, w := range weeks {
		ctx.Printf("Week %d\n", w)
		for _, item := range grouped[w] {
			ctx.Printf("  %-20s %-24s %s\n", item.Word, item.Translation, cli.FocusLabel(item.Focus))
		}
	}
	ctx.Printf("\n%d words\n", len(items))
	return nil
}
