package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/cli/backups"
	"github.com/julianstephens/habitcards/internal/cli/diet"
	"github.com/julianstephens/habitcards/internal/cli/habits"
	"github.com/julianstephens/habitcards/internal/cli/profile"
	"github.com/julianstephens/habitcards/internal/cli/system"
	"github.com/julianstephens/habitcards/internal/constants"
	apperrors "github.com/julianstephens/habitcards/internal/errors"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/backend"
	"github.com/julianstephens/habitcards/internal/storage/memory"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite or JSON file path, PostgreSQL or Redis URL, or 'keyring'. Passwords must NOT be embedded in the URL; store the URL in the OS keyring instead." type:"string" default:"${default_config}" env:"HABITCARDS_CONFIG"`
	Debug   bool   `help:"Enable debug logging." env:"HABITCARDS_DEBUG"`

	Init     system.InitCmd      `cmd:"" help:"Initialize habitcards storage."`
	Migrate  system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    habits.HabitCmd     `cmd:"" help:"Manage habit cards."`
	Stats    habits.StatsCmd     `cmd:"" help:"Show completion per frequency."`
	Diet     diet.DietCmd        `cmd:"" help:"Track calories and browse diet plans."`
	Profile  profile.ProfileCmd  `cmd:"" help:"Show or edit your profile."`
	Theme    profile.ThemeCmd    `cmd:"" help:"Show or change the colour mode."`
	Settings profile.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   backups.BackupCmd   `cmd:"" help:"Manage database backups."`
	Data     system.DataCmd      `cmd:"" help:"Manage stored data."`
	Keyring  system.KeyringCmd   `cmd:"" help:"Manage the connection string kept in the OS keyring."`
	Notify   system.NotifyCmd    `cmd:"" hidden:"" help:"Send a pending-habit reminder (used by schedulers)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit cards with countdown timers, a calorie counter and a profile"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: backend.ConfigDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	store, err := backend.Open(CLI.Config)
	if err != nil {
		// keyring commands are how a missing keyring entry gets fixed
		if !strings.HasPrefix(ctx.Command(), "keyring") {
			apperrors.Fatal(err)
		}
		logger.Debug("Storage unavailable for keyring command", "error", err)
		store = memory.New()
	}

	appCtx := cli.NewContext(store)
	err = ctx.Run(appCtx)
	closeStore(store)
	apperrors.Fatal(err)
}

func closeStore(store storage.Provider) {
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close storage", "error", err)
	}
}
