package main

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/cli/backups"
	"github.com/julianstephens/lernplan/internal/cli/settings"
	"github.com/julianstephens/lernplan/internal/cli/study"
	"github.com/julianstephens/lernplan/internal/cli/system"
	"github.com/julianstephens/lernplan/internal/config"
	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/errors"
	"github.com/julianstephens/lernplan/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml." type:"string" default:"~/.config/lernplan" env:"LERNPLAN_CONFIG_DIR"`
	Config    string `help:"Database path or PostgreSQL connection string. Passwords belong in LERNPLAN_DB_CONNECTION or the OS keyring, not on the command line." type:"string"`
	Driver    string `help:"Storage driver (sqlite, json, postgres, memory)." type:"string"`
	LogDebug  bool   `name:"debug" help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize lernplan storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Start    study.StartCmd       `cmd:"" help:"Start the plan today."`
	Status   study.StatusCmd      `cmd:"" help:"Show overall progress and the next task."`
	Tasks    study.TasksCmd       `cmd:"" help:"List study days."`
	Show     study.ShowCmd        `cmd:"" help:"Show the details of a day."`
	Toggle   study.ToggleCmd      `cmd:"" help:"Toggle a subtask."`
	Note     study.NoteCmd        `cmd:"" help:"Set the notes of a day."`
	Goal     study.GoalCmd        `cmd:"" help:"Set the goal of a week."`
	Vocab    study.VocabCmd       `cmd:"" help:"Browse the vocabulary."`
	Report   study.ReportCmd      `cmd:"" help:"Show a progress report."`
	Reset    study.ResetCmd       `cmd:"" help:"Reset all progress."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is available."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
}

// noLoad lists commands that open the store themselves or never touch it
var noLoad = []string{"init", "doctor", "keyring", "debug db-path"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study tracker for a four-week German curriculum"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	errors.Fatal(err)
	cfg = cfg.Resolve(config.Overrides{
		Config: CLI.Config,
		Driver: CLI.Driver,
		Debug:  CLI.LogDebug,
	})
	errors.Fatal(cfg.Validate())

	logCfg := logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.Dir()}
	if ctx.Command() == "tui" {
		logCfg.Console = io.Discard
	}
	if err := logger.Init(logCfg); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting", "command", ctx.Command(), "driver", cfg.Storage.Driver)

	store, err := cli.OpenStore(cfg)
	errors.Fatal(err)
	defer store.Close()

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
	}

	if needsLoad(ctx.Command()) {
		errors.Fatal(appCtx.Load())
	}

	errors.Fatal(ctx.Run(appCtx))
}

func needsLoad(command string) bool {
	for _, name := range noLoad {
		if strings.HasPrefix(command, name) {
			return false
		}
	}
	return true
}
