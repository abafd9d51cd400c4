package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/constants"
	habitsvc "github.com/julianstephens/habitcards/internal/habits"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/tracker"
	"github.com/julianstephens/habitcards/internal/tui/components/cards"
	"github.com/julianstephens/habitcards/internal/tui/components/countdown"
	"github.com/julianstephens/habitcards/internal/tui/components/stats"
)

// refreshInterval is how often open cards are re-evaluated for a period rollover
const refreshInterval = time.Minute

type refreshMsg struct{}

type notifiedMsg struct {
	err error
}

type Model struct {
	ctx           *cli.Context
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	cardsModel    cards.Model
	countdown     countdown.Model
	statsModel    stats.Model
	dietBar       progress.Model
	form          *huh.Form
	habitForm     *habitFormModel
	habitToDelete string
	formError     string
	status        string // last action, shown under the tabs
	dark          bool
	styles        styles
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI around an already loaded store
func NewModel(ctx *cli.Context) Model {
	dark := ctx.Profile.DarkMode()
	m := Model{
		ctx:        ctx,
		state:      constants.StateHabits,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		cardsModel: cards.New(nil, 0, 0),
		statsModel: stats.New(tracker.Stats{}, 0),
		dietBar:    progress.New(progress.WithDefaultGradient()),
		dark:       dark,
		styles:     newStyles(dark),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Theme, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateHabits {
		keys = append(keys, m.keys.Add, m.keys.Enter, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Theme, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	if m.state == constants.StateHabits {
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return scheduleRefresh()
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// reload runs the refresh point and pushes the result into every view
func (m *Model) reload() {
	habits, err := m.ctx.Habits.Refresh(m.ctx.Now())
	if err != nil {
		logger.Warn("Habit reset was not saved", "error", err)
		m.status = fmt.Sprintf("Warning: habit reset was not saved: %v", err)
	}
	m.cardsModel.SetHabits(habitsvc.Newest(habits))
	m.statsModel.SetStats(tracker.Summarize(habits))
}

func (m *Model) setDark(dark bool) {
	m.dark = dark
	m.styles = newStyles(dark)
}
