// Package tracker implements the periodic reset of recurring habits.
//
// Each habit belongs to the cohort of its Frequency. When a new day, week or
// month begins, Evaluate clears Completed on every habit of the matching
// cohort and advances that cohort's reset marker. Nothing else about a habit
// is touched.
package tracker

import (
	"errors"
	"time"

	"github.com/julianstephens/habitcards/internal/models"
)

// ErrHabitNotFound is returned when a habit ID is not in the list
var ErrHabitNotFound = errors.New("habit not found")

// Evaluate returns a copy of habits with Completed cleared for every cohort
// whose period has rolled over since its marker, along with the updated
// markers. now is supplied by the caller; its location decides the calendar.
//
// Evaluate is pure: the input slice is never modified and calling it again
// with its own output and the same now changes nothing.
func Evaluate(now time.Time, habits []models.Habit, markers models.ResetMarkers) ([]models.Habit, models.ResetMarkers) {
	out := make([]models.Habit, len(habits))
	copy(out, habits)

	if key := DayKey(now); advances(markers.Daily, key, parseDayKey) {
		resetCohort(out, models.FrequencyDaily)
		markers.Daily = key
	}

	if key := WeekKey(now); advances(markers.Weekly, key, parseWeekKey) {
		resetCohort(out, models.FrequencyWeekly)
		markers.Weekly = key
	}

	if key := MonthKey(now); advances(markers.Monthly, key, parseMonthKey) {
		resetCohort(out, models.FrequencyMonthly)
		markers.Monthly = key
	}

	return out, markers
}

func resetCohort(habits []models.Habit, freq models.Frequency) {
	for i := range habits {
		if habits[i].Frequency == freq {
			habits[i].Completed = false
		}
	}
}

// Complete returns a copy of habits with the habit identified by id marked
// completed. It is the only transition that sets Completed to true.
func Complete(habits []models.Habit, id string) ([]models.Habit, error) {
	idx := IndexOf(habits, id)
	if idx < 0 {
		return habits, ErrHabitNotFound
	}
	out := make([]models.Habit, len(habits))
	copy(out, habits)
	out[idx].Completed = true
	return out, nil
}

// IndexOf returns the position of the habit with the given id, or -1
func IndexOf(habits []models.Habit, id string) int {
	for i, h := range habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
