package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/persistence"
	"github.com/julianstephens/lernplan/internal/storage"
	"github.com/julianstephens/lernplan/internal/validation"
)

type DoctorCmd struct{}

// errWarning marks a check result that is reported but does not fail doctor
type errWarning struct{ msg string }

func (e errWarning) Error() string { return e.msg }

func warning(format string, args ...interface{}) error {
	return errWarning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name string
	// needsStore checks are skipped when storage is unreachable
	needsStore bool
	// gate checks mark storage unreachable when they fail
	gate bool
	run  func(ctx *cli.Context) error
	// detail, when set, is printed after OK
	detail func(ctx *cli.Context) string
}

var checks = []check{
	{name: "Storage reachable", gate: true, run: checkStoreReachable},
	{name: "Schema version", needsStore: true, run: checkSchemaVersion, detail: lastMigration},
	{name: "Progress document", needsStore: true, run: checkDocument},
	{name: "Curriculum integrity", needsStore: true, run: checkIntegrity},
	{name: "Backups present", run: checkBackupsPresent},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var warn errWarning
		switch {
		case err == nil && c.detail != nil:
			if d := c.detail(ctx); d != "" {
				ctx.Printf("✓ %s: OK (%s)\n", c.name, d)
			} else {
				ctx.Printf("✓ %s: OK\n", c.name)
			}
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &warn):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gate {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	versioned, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	st, err := versioned.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration history: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	if len(st.Pending) > 0 {
		names := make([]string, len(st.Pending))
		for i, m := range st.Pending {
			names[i] = m.String()
		}
		return fmt.Errorf("migrations incomplete: pending %s", strings.Join(names, ", "))
	}
	return nil
}

// lastMigration names the newest applied migration and when it ran
func lastMigration(ctx *cli.Context) string {
	versioned, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return ""
	}
	st, err := versioned.SchemaStatus()
	if err != nil {
		return ""
	}
	last, ok := st.Last()
	if !ok {
		return ""
	}
	name := fmt.Sprintf("%03d_%s", last.Version, last.Name)
	if last.AppliedAt.IsZero() {
		return name
	}
	return fmt.Sprintf("%s applied %s", name, last.AppliedAt.Local().Format("2006-01-02 15:04"))
}

func checkDocument(ctx *cli.Context) error {
	_, err := persistence.New(ctx.Store).Decode()
	if errors.Is(err, persistence.ErrNoDocument) {
		return warning("no saved progress yet - the default curriculum will be used")
	}
	return err
}

func checkIntegrity(ctx *cli.Context) error {
	doc, err := persistence.New(ctx.Store).Decode()
	if err != nil {
		// Already reported by the document check; validate what the app would use
		doc = ctx.Tracker.Document()
	}

	v := validation.New()
	docResult := v.ValidateDocument(doc)
	vocabResult := v.ValidateVocabulary(ctx.Tracker.Vocabulary(), doc)
	if docResult.HasConflicts() {
		return errors.New(docResult.FormatReport())
	}
	if vocabResult.HasConflicts() {
		return warning("%s", vocabResult.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return warning("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warning("no backups found - consider creating one with 'lernplan backup create'")
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
