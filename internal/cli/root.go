package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitcards/internal/backup"
	"github.com/julianstephens/habitcards/internal/diet"
	"github.com/julianstephens/habitcards/internal/habits"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/notifier"
	"github.com/julianstephens/habitcards/internal/profile"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/backend"
	"github.com/julianstephens/habitcards/internal/utils"
)

// Context is passed to every command's Run method
type Context struct {
	Store    storage.Provider
	Habits   *habits.Service
	Diet     *diet.Service
	Profile  *profile.Service
	Notifier notifier.Sender
	Clock    func() time.Time
}

// NewContext wires the services around store
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:    store,
		Habits:   habits.NewService(store),
		Diet:     diet.NewService(store),
		Profile:  profile.NewService(store),
		Notifier: notifier.New(),
		Clock:    time.Now,
	}
}

// Now returns the current time in the configured timezone
func (c *Context) Now() time.Time {
	now := c.Clock()
	tz := c.Profile.Settings().Timezone
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		logger.Warn("Configured timezone is invalid, using local time", "timezone", tz, "error", err)
		return now
	}
	return now.In(loc)
}

// RefreshHabits is the refresh point every habit command goes through. A
// failed write is reported but the evaluated habits are still usable.
func (c *Context) RefreshHabits() ([]models.Habit, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	habits, err := c.Habits.Refresh(c.Now())
	if err != nil {
		return habits, fmt.Errorf("failed to save habit reset: %w", err)
	}
	return habits, nil
}

// BackupSupported reports whether the store lives in a local file
func (c *Context) BackupSupported() bool {
	path := c.Store.GetConfigPath()
	switch backend.Detect(path) {
	case backend.KindSQLite, backend.KindJSON:
		_, err := os.Stat(path)
		return err == nil
	}
	return false
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.BackupSupported() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ProgressBar renders ratio (0..1) as a fixed-width text bar
func ProgressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
