// Package habits owns the stored habit cards and their reset markers. It is
// the only code that reads or writes the customCards and lastResetDates keys.
package habits

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/tracker"
	"github.com/julianstephens/habitcards/internal/validation"
)

// ErrAmbiguous is returned when a title matches more than one habit
var ErrAmbiguous = errors.New("more than one habit matches")

// Service serializes every read-modify-write of the habit collection.
type Service struct {
	store storage.Provider
	clock func() time.Time

	mu      sync.Mutex
	refresh singleflight.Group
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for CreatedAt stamps
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// NewService creates a Service backed by store
func NewService(store storage.Provider, opts ...Option) *Service {
	s := &Service{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type state struct {
	habits  []models.Habit
	markers models.ResetMarkers
}

// load reads both keys. Missing or malformed data is logged and treated as empty.
func (s *Service) load() state {
	var st state

	if raw, err := s.store.Get(constants.KeyHabits); err == nil {
		if err := json.Unmarshal([]byte(raw), &st.habits); err != nil {
			logger.Warn("Stored habits are malformed, starting with an empty list", "error", err)
			st.habits = nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Failed to read stored habits", "error", err)
	}

	if raw, err := s.store.Get(constants.KeyResetMarkers); err == nil {
		if err := json.Unmarshal([]byte(raw), &st.markers); err != nil {
			logger.Warn("Stored reset markers are malformed, treating as unset", "error", err)
			st.markers = models.ResetMarkers{}
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Failed to read reset markers", "error", err)
	}

	if st.habits == nil {
		st.habits = []models.Habit{}
	}
	return st
}

// save writes habits and markers as one atomic unit
func (s *Service) save(st state) error {
	habitsJSON, err := json.Marshal(st.habits)
	if err != nil {
		return fmt.Errorf("failed to encode habits: %w", err)
	}
	markersJSON, err := json.Marshal(st.markers)
	if err != nil {
		return fmt.Errorf("failed to encode reset markers: %w", err)
	}

	if err := s.store.SetMany(map[string]string{
		constants.KeyHabits:       string(habitsJSON),
		constants.KeyResetMarkers: string(markersJSON),
	}); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

// Refresh runs the periodic reset for now and persists the result if any
// cohort rolled over. Concurrent callers share a single evaluation. On a
// write failure the evaluated habits are still returned with the error.
func (s *Service) Refresh(now time.Time) ([]models.Habit, error) {
	v, err, _ := s.refresh.Do("refresh", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.refreshLocked(now)
	})
	habits, _ := v.([]models.Habit)
	return cloneHabits(habits), err
}

func (s *Service) refreshLocked(now time.Time) ([]models.Habit, error) {
	st := s.load()
	habits, markers := tracker.Evaluate(now, st.habits, st.markers)
	if markers == st.markers {
		return habits, nil
	}

	logger.Debug("Reset markers advanced",
		"daily", markers.Daily, "weekly", markers.Weekly, "monthly", markers.Monthly)

	if err := s.save(state{habits: habits, markers: markers}); err != nil {
		logger.Error("Failed to persist habit reset", "error", err)
		return habits, err
	}
	return habits, nil
}

// Markers returns the stored reset markers
func (s *Service) Markers() models.ResetMarkers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().markers
}

// ClearMarker unsets the reset marker of one cohort so the next refresh
// starts a new period for it
func (s *Service) ClearMarker(freq models.Frequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	switch freq {
	case models.FrequencyDaily:
		st.markers.Daily = ""
	case models.FrequencyWeekly:
		st.markers.Weekly = ""
	case models.FrequencyMonthly:
		st.markers.Monthly = ""
	default:
		return fmt.Errorf("unknown frequency %q", freq)
	}
	if err := s.save(st); err != nil {
		return err
	}
	logger.Info("Cleared reset marker", "frequency", freq)
	return nil
}

// List returns the stored habits in insertion order
func (s *Service) List() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().habits
}

// Pending returns the habits not yet completed, newest first
func Pending(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Completed {
			out = append(out, h)
		}
	}
	return Newest(out)
}

// Newest returns a copy of habits ordered by creation time, newest first
func Newest(habits []models.Habit) []models.Habit {
	out := cloneHabits(habits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Stats summarizes completion per frequency
func (s *Service) Stats() tracker.Stats {
	return tracker.Summarize(s.List())
}

// Add validates in and appends a new, not completed habit
func (s *Service) Add(in validation.HabitInput) (models.Habit, error) {
	h, err := validation.Habit(in)
	if err != nil {
		return models.Habit{}, err
	}

	h.ID = uuid.NewString()
	h.Completed = false
	h.CreatedAt = s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	st.habits = append(st.habits, h)
	if err := s.save(st); err != nil {
		return h, err
	}
	logger.Info("Added habit", "id", h.ID, "title", h.Title, "frequency", h.Frequency)
	return h, nil
}

const minIDPrefix = 4

// Find resolves ref as an exact ID, then as a case-insensitive title, then
// as a unique ID prefix
func (s *Service) Find(ref string) (models.Habit, error) {
	return find(s.List(), ref)
}

func find(habits []models.Habit, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if idx := tracker.IndexOf(habits, ref); idx >= 0 {
		return habits[idx], nil
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Title, ref) {
			matches = append(matches, h)
		}
	}
	// fall back to the short IDs printed by "habit list"
	if len(matches) == 0 && len(ref) >= minIDPrefix {
		for _, h := range habits {
			if strings.HasPrefix(h.ID, ref) {
				matches = append(matches, h)
			}
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %q", tracker.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%w %q; use its ID instead", ErrAmbiguous, ref)
	}
}

// Delete removes the habit referenced by ID or title
func (s *Service) Delete(ref string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	h, err := find(st.habits, ref)
	if err != nil {
		return models.Habit{}, err
	}

	idx := tracker.IndexOf(st.habits, h.ID)
	st.habits = append(st.habits[:idx:idx], st.habits[idx+1:]...)
	if err := s.save(st); err != nil {
		return h, err
	}
	logger.Info("Deleted habit", "id", h.ID, "title", h.Title)
	return h, nil
}

// Complete marks the habit referenced by ID or title as completed. This is
// what a finished countdown calls. The reset pass for now runs first so a
// run that ends in a new period counts toward that period.
func (s *Service) Complete(ref string, now time.Time) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	st.habits, st.markers = tracker.Evaluate(now, st.habits, st.markers)
	h, err := find(st.habits, ref)
	if err != nil {
		return models.Habit{}, err
	}

	habits, err := tracker.Complete(st.habits, h.ID)
	if err != nil {
		return models.Habit{}, err
	}
	st.habits = habits
	h.Completed = true

	if err := s.save(st); err != nil {
		return h, err
	}
	logger.Info("Completed habit", "id", h.ID, "title", h.Title)
	return h, nil
}

// Clear removes every habit card and the reset markers
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveMany(constants.HabitKeys); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}
	logger.Info("Cleared habit data")
	return nil
}

func cloneHabits(habits []models.Habit) []models.Habit {
	if habits == nil {
		return nil
	}
	out := make([]models.Habit, len(habits))
	copy(out, habits)
	return out
}
