package constants

// Storage keys. The habit list and the reset markers are always written together.
const (
	KeyHabits         = "customCards"
	KeyResetMarkers   = "lastResetDates"
	KeyCalorieCounter = "@calorie_counter_data"
	KeyCalorieHistory = "@calorie_counter_data_array"
	KeyProfile        = "profile"
	KeyColorMode      = "colorMode"
	KeySettings       = "settings"
)

// HabitKeys are removed by a habit data clear
var HabitKeys = []string{KeyHabits, KeyResetMarkers}

// AllKeys are removed by a full data clear
var AllKeys = []string{
	KeyHabits,
	KeyResetMarkers,
	KeyCalorieCounter,
	KeyCalorieHistory,
	KeyProfile,
	KeyColorMode,
	KeySettings,
}
