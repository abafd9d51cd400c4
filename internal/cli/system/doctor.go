package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/habitcards/internal/backup"
	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/constants"
	apperrors "github.com/julianstephens/habitcards/internal/errors"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/utils"
	"github.com/julianstephens/habitcards/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Stored data decodes", needsDB: true, run: checkStoredData},
	{name: "Habit integrity", needsDB: true, run: checkHabitIntegrity},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(versioned)
	if !ok {
		return nil
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(versioned)
	if !ok {
		return nil
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'habitcards migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.BackupSupported() {
		return fmt.Errorf("backups are only kept for local SQLite and JSON stores")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitcards backup create'")
	}
	return nil
}

// checkStoredData decodes every known key into its model. The services
// treat malformed values as empty, so this is where silent data loss shows up.
func checkStoredData(ctx *cli.Context) error {
	targets := map[string]func() interface{}{
		constants.KeyHabits:         func() interface{} { return &[]models.Habit{} },
		constants.KeyResetMarkers:   func() interface{} { return &models.ResetMarkers{} },
		constants.KeyCalorieCounter: func() interface{} { return &models.CalorieCounter{} },
		constants.KeyCalorieHistory: func() interface{} { return &[]models.CalorieEntry{} },
		constants.KeyProfile:        func() interface{} { return &models.Profile{} },
		constants.KeySettings:       func() interface{} { return &models.Settings{} },
	}

	var problems []error
	for _, key := range constants.AllKeys {
		raw, err := ctx.Store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if key == constants.KeyColorMode {
			if _, err := strconv.ParseBool(raw); err != nil {
				problems = append(problems, fmt.Errorf("%s: %q is not a boolean", key, raw))
			}
			continue
		}
		if err := json.Unmarshal([]byte(raw), targets[key]()); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
	}
	return apperrors.Join(problems...)
}

func checkHabitIntegrity(ctx *cli.Context) error {
	v := validation.New()
	result := v.ValidateHabits(ctx.Habits.List())
	result.Conflicts = append(result.Conflicts, v.ValidateMarkers(ctx.Habits.Markers(), ctx.Now()).Conflicts...)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found (run 'habitcards habit validate --fix')", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if tz := ctx.Profile.Settings().Timezone; !utils.ValidateTimezone(tz) {
		return fmt.Errorf("configured timezone %q is not a valid IANA timezone", tz)
	}
	return nil
}
