package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	var opts []tea.ProgramOption
	if ctx.Config.TUI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.NewModel(ctx.Tracker), opts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
