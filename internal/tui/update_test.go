package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage/memory"
	"github.com/julianstephens/habitcards/internal/tui/components/cards"
	"github.com/julianstephens/habitcards/internal/tui/components/countdown"
	"github.com/julianstephens/habitcards/internal/validation"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeSender) Notify(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return nil
}

func setupModel(t *testing.T) (*cli.Context, *fakeSender, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	ctx := cli.NewContext(memory.New())
	sender := &fakeSender{}
	ctx.Notifier = sender
	ctx.Clock = func() time.Time { return now }
	return ctx, sender, &now
}

func addHabit(t *testing.T, ctx *cli.Context, title, frequency string) models.Habit {
	t.Helper()
	h, err := ctx.Habits.Add(validation.HabitInput{
		Title: title, Description: "test habit", HabitType: "cardio", Frequency: frequency, Seconds: 2,
	})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	return h
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	ctx, _, _ := setupModel(t)
	m := NewModel(ctx)

	want := []constants.SessionState{
		constants.StateStats,
		constants.StateDiet,
		constants.StateProfile,
		constants.StateHabits,
	}
	for _, state := range want {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != state {
			t.Fatalf("state = %v, want %v", m.state, state)
		}
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateProfile {
		t.Errorf("shift+tab from habits: state = %v, want profile", m.state)
	}
}

func TestThemeToggleIsSaved(t *testing.T) {
	ctx, _, _ := setupModel(t)
	m := NewModel(ctx)
	before := m.dark

	m, _ = send(m, runes("t"))
	if m.dark == before {
		t.Fatal("theme did not toggle")
	}
	if ctx.Profile.DarkMode() != m.dark {
		t.Errorf("stored dark mode = %v, want %v", ctx.Profile.DarkMode(), m.dark)
	}
}

func TestQuit(t *testing.T) {
	ctx, _, _ := setupModel(t)
	m := NewModel(ctx)

	m, cmd := send(m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestStartAndFinishHabit(t *testing.T) {
	ctx, sender, _ := setupModel(t)
	h := addHabit(t, ctx, "Plank", "daily")
	m := NewModel(ctx)

	m, cmd := send(m, cards.StartHabitMsg{ID: h.ID})
	if m.state != constants.StateTimer {
		t.Fatalf("state = %v, want timer", m.state)
	}
	if cmd == nil {
		t.Fatal("expected the countdown to start ticking")
	}
	if !strings.Contains(m.View(), "00:00:02") {
		t.Errorf("timer view missing remaining time:\n%s", m.View())
	}

	m, cmd = send(m, countdown.FinishedMsg{Habit: h})
	if m.state != constants.StateHabits {
		t.Errorf("state = %v, want habits", m.state)
	}
	got, err := ctx.Habits.Find(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed {
		t.Error("habit should be completed")
	}
	if cmd == nil {
		t.Fatal("expected a notification command")
	}
	m, _ = send(m, cmd())
	if len(sender.messages) != 1 || sender.messages[0] != "Plank complete (00:00:02, daily)" {
		t.Errorf("notifications = %v", sender.messages)
	}
	if !strings.Contains(m.status, "Completed habit: Plank") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFinishWithNotificationsDisabled(t *testing.T) {
	ctx, sender, _ := setupModel(t)
	if err := ctx.Profile.SaveSettings(models.Settings{Timezone: "Local", NotificationsEnabled: false}); err != nil {
		t.Fatal(err)
	}
	h := addHabit(t, ctx, "Plank", "daily")
	m := NewModel(ctx)

	m, _ = send(m, cards.StartHabitMsg{ID: h.ID})
	_, cmd := send(m, countdown.FinishedMsg{Habit: h})
	if cmd != nil {
		t.Error("no notification expected")
	}
	if len(sender.messages) != 0 {
		t.Errorf("notifications = %v", sender.messages)
	}
}

func TestTimerBackLeavesHabitPending(t *testing.T) {
	ctx, _, _ := setupModel(t)
	h := addHabit(t, ctx, "Plank", "daily")
	m := NewModel(ctx)

	m, _ = send(m, cards.StartHabitMsg{ID: h.ID})
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a back message")
	}
	m, _ = send(m, cmd())
	if m.state != constants.StateHabits {
		t.Errorf("state = %v, want habits", m.state)
	}
	got, _ := ctx.Habits.Find(h.ID)
	if got.Completed {
		t.Error("habit should still be pending")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	ctx, _, _ := setupModel(t)
	keep := addHabit(t, ctx, "Read", "weekly")
	drop := addHabit(t, ctx, "Run", "daily")
	m := NewModel(ctx)

	m, _ = send(m, cards.DeleteHabitMsg{ID: drop.ID})
	if m.state != constants.StateConfirmDelete {
		t.Fatalf("state = %v, want confirm delete", m.state)
	}
	if !strings.Contains(m.View(), `Delete habit "Run"?`) {
		t.Errorf("confirmation view:\n%s", m.View())
	}

	m, _ = send(m, runes("n"))
	if m.state != constants.StateHabits || len(ctx.Habits.List()) != 2 {
		t.Fatal("declining should keep the habit")
	}

	m, _ = send(m, cards.DeleteHabitMsg{ID: drop.ID})
	m, _ = send(m, runes("y"))
	list := ctx.Habits.List()
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Errorf("habits after delete = %+v", list)
	}
	if m.cardsModel.Len() != 1 {
		t.Errorf("cards shown = %d, want 1", m.cardsModel.Len())
	}
}

func TestRefreshRollsOverCompletedHabits(t *testing.T) {
	ctx, _, now := setupModel(t)
	h := addHabit(t, ctx, "Plank", "daily")
	m := NewModel(ctx)
	m, _ = send(m, cards.StartHabitMsg{ID: h.ID})
	m, _ = send(m, countdown.FinishedMsg{Habit: h})

	*now = now.AddDate(0, 0, 1)
	m, cmd := send(m, refreshMsg{})
	if cmd == nil {
		t.Error("refresh should reschedule itself")
	}
	got, _ := ctx.Habits.Find(h.ID)
	if got.Completed {
		t.Error("daily habit should reset on the next day")
	}
	if m.statsModel.View() == "" {
		t.Error("stats view should not be empty")
	}
}

func TestAddHabitEscape(t *testing.T) {
	ctx, _, _ := setupModel(t)
	m := NewModel(ctx)

	m, cmd := send(m, cards.AddHabitMsg{})
	if m.state != constants.StateAddHabit || m.form == nil {
		t.Fatal("expected the add form")
	}
	_ = cmd

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateHabits {
		t.Errorf("state = %v, want habits", m.state)
	}
}

func TestHabitFormInput(t *testing.T) {
	fm := newHabitFormModel()
	fm.Title = "Stretch"
	fm.Description = "Morning routine"
	fm.Minutes = " 5 "
	fm.Seconds = ""

	in := fm.input()
	if in.TotalSeconds() != 300 {
		t.Errorf("TotalSeconds() = %d, want 300", in.TotalSeconds())
	}
	if in.HabitType != "Cardio" || in.Frequency != "Daily" {
		t.Errorf("defaults = %s/%s", in.HabitType, in.Frequency)
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"12", false},
		{"-1", true},
		{"ten", true},
	}
	for _, tt := range tests {
		if err := validateCount(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateCount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestViewShowsTabsAndGreeting(t *testing.T) {
	ctx, _, _ := setupModel(t)
	addHabit(t, ctx, "Plank", "daily")
	m := NewModel(ctx)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{"Good Morning", "15, May", "Habits", "Stats", "Diet", "Profile", "Plank"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.state = constants.StateDiet
	if !strings.Contains(m.View(), "2,000 kcal") {
		t.Errorf("diet view missing target:\n%s", m.View())
	}

	m.state = constants.StateProfile
	if !strings.Contains(m.View(), "No profile yet") {
		t.Errorf("profile view:\n%s", m.View())
	}
}
