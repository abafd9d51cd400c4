package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/models"
)

// DayKey returns the daily reset key for t (YYYY-MM-DD in t's location).
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WeekKey returns the weekly reset key for t in the form "{year}-W{week}".
//
// Weeks are counted from January 1st and roll over on Sundays:
// week = ceil((yearDay + weekday(Jan 1)) / 7), with yearDay 1-based and
// Sunday = 0. This is not ISO-8601 week numbering; the first and last weeks
// of a year are usually partial.
func WeekKey(t time.Time) string {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	week := (t.YearDay() + int(jan1.Weekday()) + 6) / 7
	return fmt.Sprintf("%d-W%d", t.Year(), week)
}

// MonthKey returns the monthly reset key for t in the form "{year}-{month}",
// month 1-based and not zero padded.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// period is a parsed reset key. Keys of one cohort order by (major, minor).
type period struct {
	major, minor int
}

func (p period) after(o period) bool {
	if p.major != o.major {
		return p.major > o.major
	}
	return p.minor > o.minor
}

func parseDayKey(key string) (period, bool) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return period{}, false
	}
	return period{major: t.Year(), minor: t.YearDay()}, true
}

// maxWeek is the last week WeekKey can produce: a leap year starting on a Saturday.
const maxWeek = 54

func parseWeekKey(key string) (period, bool) {
	year, week, ok := strings.Cut(key, "-W")
	if !ok {
		return period{}, false
	}
	p, ok := parsePair(year, week)
	if !ok || p.minor < 1 || p.minor > maxWeek {
		return period{}, false
	}
	return p, true
}

func parseMonthKey(key string) (period, bool) {
	year, month, ok := strings.Cut(key, "-")
	if !ok {
		return period{}, false
	}
	p, ok := parsePair(year, month)
	if !ok || p.minor < 1 || p.minor > 12 {
		return period{}, false
	}
	return p, true
}

func parsePair(a, b string) (period, bool) {
	major, err := strconv.Atoi(a)
	if err != nil {
		return period{}, false
	}
	minor, err := strconv.Atoi(b)
	if err != nil || minor < 0 {
		return period{}, false
	}
	return period{major: major, minor: minor}, true
}

// advances reports whether current is a newly entered period relative to the
// stored marker. An unset or unreadable marker is always advanced; a current
// key older than the marker never is.
func advances(stored, current string, parse func(string) (period, bool)) bool {
	if stored == current {
		return false
	}
	prev, ok := parse(stored)
	if !ok {
		return true
	}
	cur, ok := parse(current)
	if !ok {
		return false
	}
	return cur.after(prev)
}

func cohort(freq models.Frequency) (func(time.Time) string, func(string) (period, bool), bool) {
	switch freq {
	case models.FrequencyDaily:
		return DayKey, parseDayKey, true
	case models.FrequencyWeekly:
		return WeekKey, parseWeekKey, true
	case models.FrequencyMonthly:
		return MonthKey, parseMonthKey, true
	}
	return nil, nil, false
}

// FutureMarker reports whether key names a period later than the one now
// falls in. Such a marker blocks every reset of its cohort until the clock
// catches up.
func FutureMarker(freq models.Frequency, key string, now time.Time) bool {
	keyFor, parse, ok := cohort(freq)
	if !ok || key == "" {
		return false
	}
	stored, ok := parse(key)
	if !ok {
		return false
	}
	cur, ok := parse(keyFor(now))
	return ok && stored.after(cur)
}

// ValidMarker reports whether key is a well-formed reset marker for freq.
// The empty marker (never reset) is valid.
func ValidMarker(freq models.Frequency, key string) bool {
	if key == "" {
		return true
	}
	_, parse, ok := cohort(freq)
	if !ok {
		return false
	}
	_, ok = parse(key)
	return ok
}
