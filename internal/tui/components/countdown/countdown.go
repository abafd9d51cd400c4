package countdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/timer"
)

// TickMsg advances the countdown identified by ID by one step
type TickMsg struct {
	ID int
}

// FinishedMsg is sent once when the countdown reaches zero
type FinishedMsg struct {
	Habit models.Habit
}

// BackMsg leaves the timer without completing the habit
type BackMsg struct{}

type KeyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// lastID makes ticks from an abandoned countdown ignorable
var lastID int

// Model is the full screen countdown for one habit
type Model struct {
	id     int
	habit  models.Habit
	cd     *timer.Countdown
	bar    progress.Model
	keys   KeyMap
	width  int
	height int
}

func New(h models.Habit, width, height int) Model {
	lastID++
	bar := progress.New(progress.WithDefaultGradient())
	m := Model{
		id:    lastID,
		habit: h,
		cd:    timer.New(h.Duration()),
		bar:   bar,
		keys:  DefaultKeyMap(),
	}
	m.SetSize(width, height)
	return m
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(timer.Step, func(time.Time) tea.Msg { return TickMsg{ID: id} })
}

// Init starts ticking
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || m.cd.Finished() {
			return m, nil
		}
		if _, finished := m.cd.Tick(); finished {
			h := m.habit
			return m, func() tea.Msg { return FinishedMsg{Habit: h} }
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.cd.Toggle()
		case key.Matches(msg, m.keys.Reset):
			m.cd.Reset()
		case key.Matches(msg, m.keys.Back):
			m.cd.Pause()
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	clockStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) View() string {
	status := "running"
	switch {
	case m.cd.Finished():
		status = "done"
	case m.cd.Paused():
		status = "paused"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.habit.Title),
		hintStyle.Render(fmt.Sprintf("%s · %s", m.habit.HabitType, m.habit.Frequency)),
		clockStyle.Render(timer.FormatDuration(int(m.cd.Remaining().Seconds()))),
		m.bar.ViewAs(m.cd.Progress()),
		"",
		hintStyle.Render(status+"  ·  space pause/resume  ·  r reset  ·  esc back"),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	barWidth := width - 8
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.bar.Width = barWidth
}
