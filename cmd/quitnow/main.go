package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/cli/backups"
	"github.com/julianstephens/quitnow/internal/cli/daily"
	"github.com/julianstephens/quitnow/internal/cli/quit"
	"github.com/julianstephens/quitnow/internal/cli/settings"
	"github.com/julianstephens/quitnow/internal/cli/system"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/errors"
	"github.com/julianstephens/quitnow/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite or JSON file path, or a PostgreSQL/Redis URL. PostgreSQL passwords must come from the environment or the OS keyring." env:"QUITNOW_CONFIG" type:"string"`
	Debug    bool   `help:"Log to stderr at debug level."`
	LogLevel string `help:"Log level for the log file (debug, info, warn, error)." env:"QUITNOW_LOG_LEVEL"`

	Init      system.InitCmd       `cmd:"" help:"Initialize quitnow storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Onboard   quit.OnboardCmd      `cmd:"" help:"Answer the first-run survey and start your smoke-free clock."`
	Status    quit.StatusCmd       `cmd:"" help:"Show time smoke-free, cigarettes avoided and money saved."`
	Diagnose  quit.DiagnoseCmd     `cmd:"" help:"Project what smoking has cost so far."`
	Reset     quit.ResetCmd        `cmd:"" help:"Erase your progress and start over."`
	Missions  daily.MissionsCmd    `cmd:"" help:"Today's mission checklist."`
	Journal   daily.JournalCmd     `cmd:"" help:"Mood journal."`
	Notify    system.NotifyCmd     `cmd:"" help:"Desktop reminders."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	ConfigCmd system.ConfigCmd     `cmd:"" name:"config" help:"Manage the connection string in the OS keyring."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage storage backups."`
	DebugCmd  system.DebugCmd      `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
}

// selfLoading commands open storage themselves
var selfLoading = map[string]bool{
	"init":   true,
	"doctor": true,
	"config": true,
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Quit smoking, one minute at a time."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config, source := cli.ResolveConfig(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cli.ConfigDir(config),
		Level:     CLI.LogLevel,
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Resolved storage", "source", source)

	store, err := cli.NewProvider(config, source)
	if err != nil {
		errors.Fatal(err)
	}

	command := ""
	if sel := ctx.Selected(); sel != nil {
		command = sel.Name
		if sel.Parent != nil && sel.Parent.Name != "" && sel.Parent.Name != constants.AppName {
			command = sel.Parent.Name
		}
	}
	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	if err := ctx.Run(cli.NewContext(store)); err != nil {
		errors.Fatal(err)
	}
}
