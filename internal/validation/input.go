package validation

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/habitcards/internal/constants"
	apperrors "github.com/julianstephens/habitcards/internal/errors"
	"github.com/julianstephens/habitcards/internal/models"
)

var titleCaser = cases.Title(language.English)

// normalize folds user input such as "WEEKLY" or " daily " into "Weekly" / "Daily"
func normalize(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// ParseFrequency accepts a frequency name in any letter case
func ParseFrequency(s string) (models.Frequency, error) {
	want := models.Frequency(normalize(s))
	for _, f := range models.Frequencies {
		if f == want {
			return f, nil
		}
	}
	return "", apperrors.Invalid("frequency", "must be one of Daily, Weekly, Monthly (got %q)", s)
}

// ParseHabitType accepts a habit type name in any letter case
func ParseHabitType(s string) (models.HabitType, error) {
	want := models.HabitType(normalize(s))
	for _, ht := range models.HabitTypes {
		if ht == want {
			return ht, nil
		}
	}
	return "", apperrors.Invalid("type", "must be one of Cardio, Strength, Meditation, Study (got %q)", s)
}

// ParseGender accepts Male, Female or Other in any letter case. Empty input is allowed.
func ParseGender(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	want := normalize(s)
	for _, g := range models.Genders {
		if g == want {
			return g, nil
		}
	}
	return "", apperrors.Invalid("gender", "must be one of Male, Female, Other (got %q)", s)
}

// HabitInput is the raw add-habit form
type HabitInput struct {
	Title       string
	Description string
	HabitType   string
	Frequency   string
	Hours       int
	Minutes     int
	Seconds     int
}

// TotalSeconds folds the hour/minute/second fields into one duration
func (in HabitInput) TotalSeconds() int {
	return in.Hours*3600 + in.Minutes*60 + in.Seconds
}

// Habit validates the add-habit form and returns a new, not yet completed
// habit without an ID.
func Habit(in HabitInput) (models.Habit, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	var errs []error
	if title == "" {
		errs = append(errs, apperrors.Invalid("title", "must not be empty"))
	}
	if description == "" {
		errs = append(errs, apperrors.Invalid("description", "must not be empty"))
	}
	if in.Hours < 0 || in.Minutes < 0 || in.Seconds < 0 {
		errs = append(errs, apperrors.Invalid("duration", "hours, minutes and seconds must not be negative"))
	}

	total := in.TotalSeconds()
	if err := Duration(total); err != nil {
		errs = append(errs, err)
	}

	habitType, err := ParseHabitType(in.HabitType)
	if err != nil {
		errs = append(errs, err)
	}
	frequency, err := ParseFrequency(in.Frequency)
	if err != nil {
		errs = append(errs, err)
	}

	if err := apperrors.Join(errs...); err != nil {
		return models.Habit{}, err
	}

	return models.Habit{
		Title:           title,
		Description:     description,
		HabitType:       habitType,
		DurationSeconds: total,
		Frequency:       frequency,
	}, nil
}

// Duration checks a countdown length in seconds
func Duration(seconds int) error {
	if seconds <= 0 {
		return apperrors.Invalid("duration", "must be greater than zero")
	}
	if seconds > constants.MaxHabitDurationSec {
		return apperrors.Invalid("duration", "must not exceed 24 hours")
	}
	return nil
}

// ProfileInput is the raw profile form. Age is text because the form field is free text.
type ProfileInput struct {
	Name        string
	Age         string
	Occupation  string
	Gender      string
	Frequency   string
	Description string
	PhotoPath   string
}

// Profile validates the profile form
func Profile(in ProfileInput) (models.Profile, error) {
	name := strings.TrimSpace(in.Name)
	occupation := strings.TrimSpace(in.Occupation)
	description := strings.TrimSpace(in.Description)

	var errs []error
	if len([]rune(name)) < constants.MinProfileNameLen {
		errs = append(errs, apperrors.Invalid("name", "must be at least %d characters", constants.MinProfileNameLen))
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil {
		errs = append(errs, apperrors.Invalid("age", "must be a number"))
	} else if age < constants.MinProfileAge {
		errs = append(errs, apperrors.Invalid("age", "must be at least %d", constants.MinProfileAge))
	}

	if len([]rune(occupation)) < constants.MinProfileOccupationLen {
		errs = append(errs, apperrors.Invalid("occupation", "must be at least %d characters", constants.MinProfileOccupationLen))
	}
	if description == "" {
		errs = append(errs, apperrors.Invalid("description", "must not be empty"))
	}

	gender, err := ParseGender(in.Gender)
	if err != nil {
		errs = append(errs, err)
	}

	if err := apperrors.Join(errs...); err != nil {
		return models.Profile{}, err
	}

	return models.Profile{
		Name:        name,
		Age:         age,
		Occupation:  occupation,
		Gender:      gender,
		Frequency:   strings.TrimSpace(in.Frequency),
		Description: description,
		PhotoPath:   strings.TrimSpace(in.PhotoPath),
	}, nil
}

// CalorieCounter checks a counter before it is saved
func CalorieCounter(c models.CalorieCounter) error {
	var errs []error
	meals := map[models.Meal]int{
		models.MealBreakfast: c.Breakfast,
		models.MealLunch:     c.Lunch,
		models.MealDinner:    c.Dinner,
		models.MealSnacks:    c.Snacks,
	}
	for _, meal := range models.Meals {
		if meals[meal] < 0 {
			errs = append(errs, apperrors.Invalid(string(meal), "must not be negative"))
		}
	}
	if c.TargetCalories <= 0 {
		errs = append(errs, apperrors.Invalid("target", "must be greater than zero"))
	}
	return apperrors.Join(errs...)
}

// ParseCalories reads a meal field. Blank input counts as zero.
func ParseCalories(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.Invalid(field, "must be a whole number")
	}
	if n < 0 {
		return 0, apperrors.Invalid(field, "must not be negative")
	}
	return n, nil
}
