package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/validation"
)

type habitFormModel struct {
	Title       string
	Description string
	HabitType   string
	Frequency   string
	Hours       string
	Minutes     string
	Seconds     string
}

func newHabitFormModel() *habitFormModel {
	return &habitFormModel{
		HabitType: string(models.HabitTypeCardio),
		Frequency: string(models.FrequencyDaily),
		Hours:     "0",
		Minutes:   "0",
		Seconds:   "0",
	}
}

// input converts the form strings. Fields already passed validateCount.
func (fm *habitFormModel) input() validation.HabitInput {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(s))
		return n
	}
	return validation.HabitInput{
		Title:       fm.Title,
		Description: fm.Description,
		HabitType:   fm.HabitType,
		Frequency:   fm.Frequency,
		Hours:       atoi(fm.Hours),
		Minutes:     atoi(fm.Minutes),
		Seconds:     atoi(fm.Seconds),
	}
}

func validateCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}
		return nil
	}
}

func newHabitForm(fm *habitFormModel, dark bool) *huh.Form {
	typeOptions := make([]huh.Option[string], len(models.HabitTypes))
	for i, ht := range models.HabitTypes {
		typeOptions[i] = huh.NewOption(string(ht), string(ht))
	}
	freqOptions := make([]huh.Option[string], len(models.Frequencies))
	for i, f := range models.Frequencies {
		freqOptions[i] = huh.NewOption(string(f), string(f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(notBlank("title")),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description).
				Validate(notBlank("description")),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&fm.HabitType),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(freqOptions...).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hours").
				Value(&fm.Hours).
				Validate(validateCount),
			huh.NewInput().
				Title("Minutes").
				Value(&fm.Minutes).
				Validate(validateCount),
			huh.NewInput().
				Title("Seconds").
				Value(&fm.Seconds).
				Validate(validateCount),
		),
	).WithTheme(formTheme(dark))
}
