package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/diet"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/profile"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateHabits:  "Habits",
	constants.StateStats:   "Stats",
	constants.StateDiet:    "Diet",
	constants.StateProfile: "Profile",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = m.styles.doc.Render(m.cardsModel.View())
	case constants.StateStats:
		content = m.styles.doc.Render(m.viewStats())
	case constants.StateDiet:
		content = m.styles.doc.Render(m.viewDiet())
	case constants.StateProfile:
		content = m.styles.doc.Render(m.viewProfile())
	case constants.StateTimer:
		content = m.countdown.View()
	case constants.StateAddHabit:
		content = m.viewAddHabit()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.status != "" {
		status = m.styles.warning.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	now := m.ctx.Now()
	var name string
	if p, err := m.ctx.Profile.Load(); err == nil {
		name = p.Name
	}
	greeting := m.styles.header.Render(profile.Greeting(now, name)) + m.styles.muted.Render("  "+profile.Headline(now))
	return lipgloss.JoinVertical(lipgloss.Left, greeting, m.viewWeekStrip())
}

func (m Model) viewWeekStrip() string {
	days := profile.WeekStrip(m.ctx.Now())
	labels := make([]string, len(days))
	for i, d := range days {
		switch d.Status {
		case profile.DayToday:
			labels[i] = m.styles.today.Render(d.Label())
		default:
			labels[i] = m.styles.muted.Render(d.Label())
		}
	}
	return strings.Join(labels, " ")
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, s := range tabs {
		if m.state == s {
			rendered = append(rendered, m.styles.activeTab.Render(tabTitles[s]))
		} else {
			rendered = append(rendered, m.styles.inactiveTab.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewStats() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.header.Render("Completion"),
		"",
		m.statsModel.View(),
	)
}

func (m Model) viewDiet() string {
	c := m.ctx.Diet.Today(m.ctx.Now())
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Today's calories"))
	b.WriteString("\n\n")
	for _, meal := range models.Meals {
		fmt.Fprintf(&b, "%-10s %6s kcal\n", mealLabel(meal), humanize.Comma(int64(mealCalories(c, meal))))
	}
	total := diet.Total(c)
	fmt.Fprintf(&b, "\n%-10s %6s / %s kcal\n", "Total", humanize.Comma(int64(total)), humanize.Comma(int64(c.TargetCalories)))
	b.WriteString(m.dietBar.ViewAs(diet.Progress(c) / 100))
	if diet.OverTarget(c) {
		b.WriteString("\n")
		b.WriteString(m.styles.danger.Render(fmt.Sprintf("Over target by %d kcal", total-c.TargetCalories)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.muted.Render("Log meals with 'habitcards diet log'."))
	return b.String()
}

func mealLabel(meal models.Meal) string {
	s := string(meal)
	return strings.ToUpper(s[:1]) + s[1:]
}

func mealCalories(c models.CalorieCounter, meal models.Meal) int {
	switch meal {
	case models.MealBreakfast:
		return c.Breakfast
	case models.MealLunch:
		return c.Lunch
	case models.MealDinner:
		return c.Dinner
	case models.MealSnacks:
		return c.Snacks
	}
	return 0
}

func (m Model) viewProfile() string {
	p, err := m.ctx.Profile.Load()
	if errors.Is(err, profile.ErrNoProfile) {
		return "No profile yet.\nCreate one with 'habitcards profile set'."
	}
	if err != nil {
		return m.styles.danger.Render(err.Error())
	}

	theme := "light"
	if m.dark {
		theme = "dark"
	}
	rows := [][2]string{
		{"Name", p.Name},
		{"Age", fmt.Sprint(p.Age)},
		{"Occupation", p.Occupation},
		{"Gender", p.Gender},
		{"Exercise", p.Frequency},
		{"About", p.Description},
		{"Theme", theme},
	}
	if p.LastUpdated != nil {
		rows = append(rows, [2]string{"Updated", humanize.RelTime(*p.LastUpdated, m.ctx.Clock(), "ago", "from now")})
	}

	var b strings.Builder
	b.WriteString(m.styles.header.Render("Profile"))
	b.WriteString("\n\n")
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", m.styles.muted.Render(fmt.Sprintf("%-11s", r[0])), r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewAddHabit() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, m.styles.danger.Render(m.formError), "", view)
	}
	return m.styles.doc.Render(view)
}

func (m Model) viewConfirmDelete() string {
	title := m.habitToDelete
	if h, err := m.ctx.Habits.Find(m.habitToDelete); err == nil {
		title = h.Title
	}
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.danger.Render(fmt.Sprintf("Delete habit %q?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
