package settings

import (
	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/logger"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DarkMode *bool `help:"Use the dark colour palette in the TUI."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.DarkMode == nil || c.List {
		printSettings(ctx)
		if c.DarkMode == nil {
			return nil
		}
	}

	ctx.Tracker.SetDarkMode(*c.DarkMode)
	ctx.Printf("✓ Dark mode %s\n", onOff(*c.DarkMode))
	return nil
}

func printSettings(ctx *cli.Context) {
	cfg := ctx.Config
	ctx.Println("Current Settings:")
	ctx.Printf("  Dark Mode:        %s\n", onOff(ctx.Tracker.DarkMode()))
	ctx.Println("\nConfiguration:")
	if cfg.File != "" {
		ctx.Printf("  Config File:      %s\n", cfg.File)
	} else {
		ctx.Println("  Config File:      (none, using defaults)")
	}
	ctx.Printf("  Storage Driver:   %s\n", cfg.Storage.Driver)
	ctx.Printf("  Storage Location: %s\n", ctx.Store.GetConfigPath())
	ctx.Printf("  Max Backups:      %d\n", cfg.Backup.Max)
	ctx.Printf("  Backup On Start:  %v\n", cfg.Backup.OnStart)
	ctx.Printf("  Alt Screen:       %v\n", cfg.TUI.AltScreen)
	ctx.Printf("  Debug Logging:    %v\n", cfg.Log.Debug)
	if path := logger.Path(); path != "" {
		ctx.Printf("  Log File:         %s\n", path)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
