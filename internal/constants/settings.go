package constants

const (
	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true

	// Diet defaults
	DefaultTargetCalories = 2000

	// Profile validation
	MinProfileNameLen       = 3
	MinProfileAge           = 4
	MinProfileOccupationLen = 2
)
