package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitcards"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitcards/habitcards.db"
	Version            = "v0.3.0"

	// KeyringConfigValue tells the CLI to read the connection string from the OS keyring
	KeyringConfigValue = "keyring"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxHabitDurationSec caps a habit countdown at 24 hours
	MaxHabitDurationSec = 86400

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitcards-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitcards-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitcards"
	TrayExecutablePrefix   = "habitcards-tray"

	// Redis store constants
	RedisKeyPrefix = "habitcards:"
	RedisOpTimeout = 3 * time.Second
)

// Session States. The first four are the tab order.
const (
	StateHabits SessionState = iota
	StateStats
	StateDiet
	StateProfile
	StateTimer
	StateAddHabit
	StateConfirmDelete
)
