package profile

import (
	"strings"
	"time"

	"github.com/julianstephens/habitcards/internal/utils"
)

// DayStatus places a day of the week strip relative to today
type DayStatus string

const (
	DayPast   DayStatus = "Past"
	DayToday  DayStatus = "Today"
	DayFuture DayStatus = "Future"
)

// StripDay is one entry of the Sunday to Saturday week strip
type StripDay struct {
	Date   time.Time
	Status DayStatus
}

// Label renders "Mon 12"
func (d StripDay) Label() string {
	return d.Date.Format("Mon 2")
}

// WeekStrip returns the seven days of now's week, Sunday first
func WeekStrip(now time.Time) []StripDay {
	start := utils.StartOfWeek(now)
	today := now.Weekday()

	days := make([]StripDay, 7)
	for i := range days {
		d := StripDay{Date: start.AddDate(0, 0, i), Status: DayFuture}
		switch wd := time.Weekday(i); {
		case wd < today:
			d.Status = DayPast
		case wd == today:
			d.Status = DayToday
		}
		days[i] = d
	}
	return days
}

// Greeting returns a time-of-day greeting, with the name when one is known
func Greeting(now time.Time, name string) string {
	var g string
	switch h := now.Hour(); {
	case h < 12:
		g = "Good Morning"
	case h < 18:
		g = "Good Afternoon"
	default:
		g = "Good Evening"
	}
	if name = strings.TrimSpace(name); name != "" {
		g += " " + name
	}
	return g
}

// Headline renders "12, March" the way the home screen shows today's date
func Headline(now time.Time) string {
	return now.Format("2, January")
}
