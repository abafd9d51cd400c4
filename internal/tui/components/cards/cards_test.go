package cards

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitcards/internal/models"
)

func TestKeysEmitMessages(t *testing.T) {
	habits := []models.Habit{
		{ID: "a1", Title: "Plank", HabitType: models.HabitTypeStrength, Frequency: models.FrequencyDaily, DurationSeconds: 60},
	}
	m := New(habits, 80, 20)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"add", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, AddHabitMsg{}},
		{"start", tea.KeyMsg{Type: tea.KeyEnter}, StartHabitMsg{ID: "a1"}},
		{"delete", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, DeleteHabitMsg{ID: "a1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCompletedHabitCannotStart(t *testing.T) {
	m := New([]models.Habit{{ID: "a1", Title: "Plank", Completed: true}}, 80, 20)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("completed habit should not start a timer")
	}
}

func TestItemRendering(t *testing.T) {
	i := Item{Habit: models.Habit{Title: "Read", HabitType: models.HabitTypeStudy, Frequency: models.FrequencyWeekly, DurationSeconds: 900}}
	if i.Title() != "○ Read" {
		t.Errorf("Title() = %q", i.Title())
	}
	if i.Description() != "Study · Weekly · 00:15:00 · pending" {
		t.Errorf("Description() = %q", i.Description())
	}
	i.Habit.Completed = true
	if i.Title() != "✓ Read" {
		t.Errorf("Title() = %q", i.Title())
	}
}

func TestEmptyView(t *testing.T) {
	m := New(nil, 80, 20)
	if m.View() != "\n  No habits yet.\n  Press 'a' to add one." {
		t.Errorf("View() = %q", m.View())
	}
}
