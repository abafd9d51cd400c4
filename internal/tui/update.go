package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/notifier"
	"github.com/julianstephens/habitcards/internal/tui/components/cards"
	"github.com/julianstephens/habitcards/internal/tui/components/countdown"
)

var tabs = []constants.SessionState{
	constants.StateHabits,
	constants.StateStats,
	constants.StateDiet,
	constants.StateProfile,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// messages that matter in every state
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case refreshMsg:
		if m.state != constants.StateAddHabit {
			m.reload()
		}
		return m, scheduleRefresh()

	case notifiedMsg:
		if msg.err != nil {
			logger.Warn("Notification not sent", "error", msg.err)
		}
		return m, nil

	case countdown.TickMsg:
		var cmd tea.Cmd
		m.countdown, cmd = m.countdown.Update(msg)
		return m, cmd

	case countdown.FinishedMsg:
		return m, m.completeHabit(msg.Habit)

	case countdown.BackMsg:
		m.state = constants.StateHabits
		m.reload()
		return m, nil

	case cards.AddHabitMsg:
		m.habitForm = newHabitFormModel()
		m.form = newHabitForm(m.habitForm, m.dark)
		m.formError = ""
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case cards.StartHabitMsg:
		h, err := m.ctx.Habits.Find(msg.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.countdown = countdown.New(h, m.width, m.contentHeight())
		m.state = constants.StateTimer
		return m, m.countdown.Init()

	case cards.DeleteHabitMsg:
		m.habitToDelete = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit:
		return m, m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	case constants.StateTimer:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.countdown, cmd = m.countdown.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		// the filter input owns the keyboard until it is closed
		if m.state == constants.StateHabits && m.cardsModel.Filtering() && msg.String() != "ctrl+c" {
			var cmd tea.Cmd
			m.cardsModel, cmd = m.cardsModel.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.toggleTheme()
			return m, nil
		}
	}

	if m.state == constants.StateHabits {
		var cmd tea.Cmd
		m.cardsModel, cmd = m.cardsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := m.styles.doc.GetFrameSize()
	m.cardsModel.SetSize(width-h, m.contentHeight()-v)
	m.statsModel.SetWidth(width - h)
	m.countdown.SetSize(width, m.contentHeight())
	barWidth := width - h - 20
	if barWidth > 50 {
		barWidth = 50
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.dietBar.Width = barWidth
}

// contentHeight leaves room for the header, tabs and help
func (m Model) contentHeight() int {
	if m.height <= 6 {
		return 0
	}
	return m.height - 6
}

func (m *Model) switchTab(step int) {
	idx := 0
	for i, s := range tabs {
		if s == m.state {
			idx = i
		}
	}
	idx = (idx + step + len(tabs)) % len(tabs)
	m.state = tabs[idx]
	m.status = ""
	if m.state == constants.StateHabits || m.state == constants.StateStats {
		m.reload()
	}
}

func (m *Model) toggleTheme() {
	dark, err := m.ctx.Profile.ToggleDarkMode()
	if err != nil {
		m.status = fmt.Sprintf("Theme not saved: %v", err)
		return
	}
	m.setDark(dark)
}

func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		m.formError = ""
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		h, err := m.ctx.Habits.Add(m.habitForm.input())
		if err != nil {
			// rebuild the form with the entered values so the user can fix them
			m.formError = err.Error()
			m.form = newHabitForm(m.habitForm, m.dark)
			return m.form.Init()
		}
		m.formError = ""
		m.status = fmt.Sprintf("Added habit: %s", h.Title)
		m.state = constants.StateHabits
		m.reload()
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateHabits
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if h, err := m.ctx.Habits.Delete(m.habitToDelete); err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Deleted habit: %s", h.Title)
		}
		m.habitToDelete = ""
		m.state = constants.StateHabits
		m.reload()
	case "n", "N", "esc":
		m.habitToDelete = ""
		m.state = constants.StateHabits
	}
	return nil
}

// completeHabit is reached when a countdown runs out
func (m *Model) completeHabit(h models.Habit) tea.Cmd {
	m.state = constants.StateHabits
	done, err := m.ctx.Habits.Complete(h.ID, m.ctx.Now())
	if err != nil {
		m.status = fmt.Sprintf("Countdown finished but the habit could not be saved: %v", err)
		m.reload()
		return nil
	}
	m.status = fmt.Sprintf("Completed habit: %s", done.Title)
	m.reload()

	if m.ctx.Notifier == nil || !m.ctx.Profile.Settings().NotificationsEnabled {
		return nil
	}
	sender := m.ctx.Notifier
	return func() tea.Msg {
		return notifiedMsg{err: sender.Notify(context.Background(), notifier.HabitCompleted(done))}
	}
}
