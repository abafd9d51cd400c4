// Package profile stores the user's details, display theme and settings.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/utils"
	"github.com/julianstephens/habitcards/internal/validation"
)

// ErrNoProfile is returned by Load before a profile has been saved
var ErrNoProfile = errors.New("no profile saved yet")

// Service reads and writes the profile, colorMode and settings keys
type Service struct {
	store storage.Provider
	clock func() time.Time
	mu    sync.Mutex
}

// NewService creates a Service backed by store
func NewService(store storage.Provider) *Service {
	return &Service{store: store, clock: time.Now}
}

// Load returns the saved profile
func (s *Service) Load() (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(constants.KeyProfile)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, ErrNoProfile
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		logger.Warn("Stored profile is malformed", "error", err)
		return models.Profile{}, ErrNoProfile
	}
	return p, nil
}

// Save validates the form, stamps LastUpdated and stores the profile
func (s *Service) Save(in validation.ProfileInput) (models.Profile, error) {
	p, err := validation.Profile(in)
	if err != nil {
		return models.Profile{}, err
	}
	now := s.clock()
	p.LastUpdated = &now

	data, err := json.Marshal(p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(constants.KeyProfile, string(data)); err != nil {
		return p, fmt.Errorf("failed to save profile: %w", err)
	}
	logger.Info("Saved profile", "name", p.Name)
	return p, nil
}

// InputFrom turns a stored profile back into form input, for partial edits
func InputFrom(p models.Profile) validation.ProfileInput {
	age := ""
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	return validation.ProfileInput{
		Name:        p.Name,
		Age:         age,
		Occupation:  p.Occupation,
		Gender:      p.Gender,
		Frequency:   p.Frequency,
		Description: p.Description,
		PhotoPath:   p.PhotoPath,
	}
}

// DarkMode returns the stored theme preference; light is the default
func (s *Service) DarkMode() bool {
	raw, err := s.store.Get(constants.KeyColorMode)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read theme", "error", err)
		}
		return false
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn("Stored theme is malformed", "value", raw)
		return false
	}
	return dark
}

// SetDarkMode stores the theme preference
func (s *Service) SetDarkMode(dark bool) error {
	if err := s.store.Set(constants.KeyColorMode, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the theme and returns the new value
func (s *Service) ToggleDarkMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dark := !s.DarkMode()
	return dark, s.SetDarkMode(dark)
}

// Settings returns the stored settings merged over the defaults
func (s *Service) Settings() models.Settings {
	settings := models.DefaultSettings()
	raw, err := s.store.Get(constants.KeySettings)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read settings", "error", err)
		}
		return settings
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("Stored settings are malformed, using defaults", "error", err)
		return models.DefaultSettings()
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	return settings
}

// SaveSettings validates and stores settings
func (s *Service) SaveSettings(settings models.Settings) error {
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Set(constants.KeySettings, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Clear removes the profile, theme and settings
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RemoveMany([]string{constants.KeyProfile, constants.KeyColorMode, constants.KeySettings})
}
