package models

import "time"

// Frequency is the recurrence period of a habit
type Frequency string

// HabitType is the display category of a habit
type HabitType string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"

	HabitTypeCardio     HabitType = "Cardio"
	HabitTypeStrength   HabitType = "Strength"
	HabitTypeMeditation HabitType = "Meditation"
	HabitTypeStudy      HabitType = "Study"
)

// Frequencies lists every recurrence period in display order
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// HabitTypes lists every habit category in display order
var HabitTypes = []HabitType{HabitTypeCardio, HabitTypeStrength, HabitTypeMeditation, HabitTypeStudy}

// Habit is a recurring habit card. Completed is set by a finished countdown
// and cleared when the habit's recurrence period rolls over.
type Habit struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	HabitType       HabitType `json:"habitType"`
	DurationSeconds int       `json:"durationSeconds"`
	Frequency       Frequency `json:"frequency"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Duration returns the countdown length
func (h Habit) Duration() time.Duration {
	return time.Duration(h.DurationSeconds) * time.Second
}

// ResetMarkers records the last period each frequency cohort was reset for.
// An empty field means the cohort has never been reset.
type ResetMarkers struct {
	Daily   string `json:"daily"`
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`
}
