package diet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/validation"
)

// Total sums the four meals
func Total(c models.CalorieCounter) int {
	return c.Breakfast + c.Lunch + c.Dinner + c.Snacks
}

// Progress returns total/target as a percentage capped at 100.
// A non-positive target yields 0.
func Progress(c models.CalorieCounter) float64 {
	if c.TargetCalories <= 0 {
		return 0
	}
	return math.Min(float64(Total(c))/float64(c.TargetCalories)*100, 100)
}

// OverTarget reports whether the day's total exceeds the target
func OverTarget(c models.CalorieCounter) bool {
	return c.TargetCalories > 0 && Total(c) > c.TargetCalories
}

// Service reads and writes the calorie counter and its history
type Service struct {
	store storage.Provider
	mu    sync.Mutex
}

// NewService creates a Service backed by store
func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// Today returns the counter for now's date. A counter saved on another day
// yields empty meals with the stored target kept.
func (s *Service) Today(now time.Time) models.CalorieCounter {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := now.Format(constants.DateFormat)
	c := s.loadCounter()
	if c.Date != date {
		c = models.CalorieCounter{Date: date, TargetCalories: c.TargetCalories}
	}
	return c
}

func (s *Service) loadCounter() models.CalorieCounter {
	c := models.CalorieCounter{TargetCalories: constants.DefaultTargetCalories}
	raw, err := s.store.Get(constants.KeyCalorieCounter)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read calorie counter", "error", err)
		}
		return c
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		logger.Warn("Stored calorie counter is malformed, starting fresh", "error", err)
		return models.CalorieCounter{TargetCalories: constants.DefaultTargetCalories}
	}
	if c.TargetCalories <= 0 {
		c.TargetCalories = constants.DefaultTargetCalories
	}
	return c
}

// Save validates c, stores it and upserts the entry for day into the history.
// Counter and history are written together.
func (s *Service) Save(c models.CalorieCounter, day time.Time) error {
	if err := validation.CalorieCounter(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.Date = day.Format(constants.DateFormat)
	history := upsert(s.loadHistory(), models.CalorieEntry{
		Date:          c.Date,
		Breakfast:     c.Breakfast,
		Lunch:         c.Lunch,
		Dinner:        c.Dinner,
		Snacks:        c.Snacks,
		TotalCalories: Total(c),
	})

	counterJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode calorie counter: %w", err)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode calorie history: %w", err)
	}

	if err := s.store.SetMany(map[string]string{
		constants.KeyCalorieCounter: string(counterJSON),
		constants.KeyCalorieHistory: string(historyJSON),
	}); err != nil {
		return fmt.Errorf("failed to save calorie counter: %w", err)
	}
	logger.Info("Saved calorie counter", "date", c.Date, "total", Total(c))
	return nil
}

// Clear resets today's counter. History is kept.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(constants.KeyCalorieCounter); err != nil {
		return fmt.Errorf("failed to clear calorie counter: %w", err)
	}
	return nil
}

// History returns the saved days, newest first
func (s *Service) History() []models.CalorieEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory()
}

func (s *Service) loadHistory() []models.CalorieEntry {
	raw, err := s.store.Get(constants.KeyCalorieHistory)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read calorie history", "error", err)
		}
		return []models.CalorieEntry{}
	}
	var entries []models.CalorieEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("Stored calorie history is malformed, ignoring it", "error", err)
		return []models.CalorieEntry{}
	}
	sortNewestFirst(entries)
	return entries
}

// ClearHistory removes every history entry
func (s *Service) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(constants.KeyCalorieHistory); err != nil {
		return fmt.Errorf("failed to clear calorie history: %w", err)
	}
	return nil
}

// Average returns the mean daily total rounded to the nearest kcal, 0 when empty
func Average(entries []models.CalorieEntry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.TotalCalories
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}

func upsert(entries []models.CalorieEntry, entry models.CalorieEntry) []models.CalorieEntry {
	out := make([]models.CalorieEntry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Date != entry.Date {
			out = append(out, e)
		}
	}
	out = append(out, entry)
	sortNewestFirst(out)
	return out
}

// dates are YYYY-MM-DD so string order is calendar order
func sortNewestFirst(entries []models.CalorieEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
