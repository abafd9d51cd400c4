package models

import "github.com/julianstephens/habitcards/internal/constants"

// Settings are user-level preferences kept in the store
type Settings struct {
	Timezone             string `json:"timezone"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}
