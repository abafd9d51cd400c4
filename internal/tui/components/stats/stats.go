package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitcards/internal/tracker"
)

var labelStyle = lipgloss.NewStyle().Width(10).Bold(true)

// Model renders the completion bars of each frequency cohort
type Model struct {
	stats tracker.Stats
	bar   progress.Model
}

func New(s tracker.Stats, width int) Model {
	m := Model{
		stats: s,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
	m.SetWidth(width)
	return m
}

func (m *Model) SetStats(s tracker.Stats) {
	m.stats = s
}

func (m *Model) SetWidth(width int) {
	w := width - 30
	if w > 50 {
		w = 50
	}
	if w < 10 {
		w = 10
	}
	m.bar.Width = w
}

func (m Model) View() string {
	var b strings.Builder
	for _, c := range m.stats.Cohorts() {
		fmt.Fprintf(&b, "%s %s  %d/%d\n\n",
			labelStyle.Render(string(c.Frequency)),
			m.bar.ViewAs(c.Ratio()),
			c.Completed, c.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}
