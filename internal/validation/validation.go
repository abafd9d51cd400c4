package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/tracker"
)

// ConflictType represents the type of data problem found in stored habits
type ConflictType string

const (
	ConflictMissingHabitID      ConflictType = "missing_habit_id"
	ConflictDuplicateHabitID    ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitTitle ConflictType = "duplicate_habit_title"
	ConflictUnknownFrequency    ConflictType = "unknown_frequency"
	ConflictInvalidDuration     ConflictType = "invalid_duration"
	ConflictInvalidMarker       ConflictType = "invalid_marker"
	ConflictFutureMarker        ConflictType = "future_marker"
)

// Conflict represents a detected problem in the stored habit data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // habit titles involved
	HabitIDs    []string // IDs of habits involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored habits and reset markers for inconsistencies
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks the habit list for missing or duplicate IDs,
// duplicate titles, unknown frequencies and out-of-range durations.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult

	byID := make(map[string][]models.Habit)
	byTitle := make(map[string][]models.Habit)
	var titleOrder []string

	for _, h := range habits {
		if h.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("Habit %q has no ID", h.Title),
				Items:       []string{h.Title},
			})
		} else {
			byID[h.ID] = append(byID[h.ID], h)
		}

		key := strings.ToLower(strings.TrimSpace(h.Title))
		if _, seen := byTitle[key]; !seen {
			titleOrder = append(titleOrder, key)
		}
		byTitle[key] = append(byTitle[key], h)

		if !knownFrequency(h.Frequency) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownFrequency,
				Description: fmt.Sprintf("Habit %q has unknown frequency %q and will never reset", h.Title, h.Frequency),
				Items:       []string{h.Title},
				HabitIDs:    []string{h.ID},
			})
		}

		if h.DurationSeconds <= 0 || h.DurationSeconds > constants.MaxHabitDurationSec {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDuration,
				Description: fmt.Sprintf("Habit %q has an invalid duration of %ds", h.Title, h.DurationSeconds),
				Items:       []string{h.Title},
				HabitIDs:    []string{h.ID},
			})
		}
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if group := byID[id]; len(group) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("%d habits share ID %s", len(group), id),
				Items:       titles(group),
				HabitIDs:    []string{id},
			})
		}
	}

	for _, key := range titleOrder {
		group := byTitle[key]
		if len(group) < 2 || key == "" {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitTitle,
			Description: fmt.Sprintf("%d habits are named %q", len(group), group[0].Title),
			Items:       titles(group),
			HabitIDs:    habitIDs(group),
		})
	}

	return result
}

// ValidateMarkers checks that every stored reset marker is readable and not
// ahead of now. Unreadable markers are not fatal: the next refresh treats
// them as unset. A future marker stops its cohort from ever resetting.
func (v *Validator) ValidateMarkers(markers models.ResetMarkers, now time.Time) ValidationResult {
	var result ValidationResult
	fields := []struct {
		freq models.Frequency
		key  string
	}{
		{models.FrequencyDaily, markers.Daily},
		{models.FrequencyWeekly, markers.Weekly},
		{models.FrequencyMonthly, markers.Monthly},
	}
	for _, f := range fields {
		if !tracker.ValidMarker(f.freq, f.key) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMarker,
				Description: fmt.Sprintf("%s reset marker %q is unreadable; the next refresh will reset the %s cohort", f.freq, f.key, strings.ToLower(string(f.freq))),
				Items:       []string{string(f.freq)},
			})
			continue
		}
		if tracker.FutureMarker(f.freq, f.key, now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureMarker,
				Description: fmt.Sprintf("%s reset marker %q is in the future; %s habits will not reset until then", f.freq, f.key, strings.ToLower(string(f.freq))),
				Items:       []string{string(f.freq)},
			})
		}
	}
	return result
}

// AutoFixFutureMarkers clears every future reset marker through clearFunc.
// The next refresh then starts a new period for that cohort.
func AutoFixFutureMarkers(conflicts []Conflict, clearFunc func(freq models.Frequency) error) []FixAction {
	actions := []FixAction{}
	for _, conflict := range conflicts {
		if conflict.Type != ConflictFutureMarker || len(conflict.Items) == 0 {
			continue
		}
		freq := models.Frequency(conflict.Items[0])
		msg := fmt.Sprintf("Cleared the %s reset marker", strings.ToLower(string(freq)))
		if err := clearFunc(freq); err != nil {
			msg = fmt.Sprintf("Failed to clear the %s reset marker: %v", strings.ToLower(string(freq)), err)
		}
		actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
	}
	return actions
}

// AutoFixDuplicateTitles keeps the oldest habit of each duplicate-title group
// and deletes the rest through deleteFunc.
func AutoFixDuplicateTitles(conflicts []Conflict, habits []models.Habit, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateHabitTitle || len(conflict.HabitIDs) <= 1 {
			continue
		}

		var group []models.Habit
		for _, id := range conflict.HabitIDs {
			if h, ok := byID[id]; ok {
				group = append(group, h)
			}
		}
		if len(group) <= 1 {
			continue
		}

		// oldest first, ID breaks ties so reruns pick the same survivor
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})

		keep := group[0]
		var deleted, failed []string
		for _, h := range group[1:] {
			if err := deleteFunc(h.ID); err != nil {
				failed = append(failed, h.ID)
				continue
			}
			deleted = append(deleted, h.ID)
		}

		switch {
		case len(deleted) > 0:
			msg := fmt.Sprintf("Removed %d duplicate habit(s) named %q (kept ID: %s, removed: %v)", len(deleted), keep.Title, keep.ID, deleted)
			if len(failed) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failed)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failed) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for %q: %v", keep.Title, failed),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}

func knownFrequency(f models.Frequency) bool {
	for _, known := range models.Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

func titles(habits []models.Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.Title
	}
	return out
}

func habitIDs(habits []models.Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.ID
	}
	return out
}
