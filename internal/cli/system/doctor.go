package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/missions"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/notifier"
	"github.com/julianstephens/quitnow/internal/storage"
	"github.com/julianstephens/quitnow/internal/utils"
	"github.com/julianstephens/quitnow/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	optional bool // failures are reported as warnings
}

var doctorChecks = []check{
	{name: "Storage reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Profile", run: checkProfile, needsDB: true},
	{name: "Missions", run: checkMissions, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, optional: true},
	{name: "Notification tray", run: checkTray, optional: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for i, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.optional:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
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

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'quitnow migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	var settings models.Settings
	err := storage.GetJSON(ctx.Store, constants.KeySettings, &settings)
	if errors.Is(err, storage.ErrNotFound) {
		// defaults apply
		return nil
	}
	if err != nil {
		return fmt.Errorf("settings record unreadable: %w", err)
	}
	if result := validation.New().ValidateSettings(settings); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	var p models.Profile
	err := storage.GetJSON(ctx.Store, constants.KeyProfile, &p)
	if storage.IsAbsent(err) {
		if _, getErr := ctx.Store.Get(constants.KeyProfile); getErr == nil {
			return fmt.Errorf("profile record is corrupt and will be ignored: %w", err)
		}
		// onboarding not done yet
		return nil
	}
	if err != nil {
		return err
	}
	if result := validation.New().ValidateProfile(p, ctx.Now()); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkMissions(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	catalog, err := missions.Lookup(settings.MissionCatalog)
	if err != nil {
		return err
	}
	today, err := utils.TodayIn(ctx.Now(), settings.Timezone)
	if err != nil {
		return err
	}

	var lg models.MissionLog
	if err := storage.GetJSON(ctx.Store, constants.KeyMissions, &lg.Missions); err != nil {
		if storage.IsAbsent(err) {
			return nil
		}
		return err
	}
	if err := storage.GetJSON(ctx.Store, constants.KeyMissionsDate, &lg.LastResetDate); err != nil && !storage.IsAbsent(err) {
		return err
	}

	result := validation.New().ValidateMissionLog(lg, catalog.Missions, today)
	for _, conflict := range result.Conflicts {
		// a stale checklist is reset on next access
		if conflict.Type != validation.ConflictStaleMissions {
			return fmt.Errorf("%s", result.FormatReport())
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'quitnow backup create'")
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		return nil
	}
	return notifier.New().Available()
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
