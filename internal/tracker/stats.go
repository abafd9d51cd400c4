package tracker

import (
	"math"

	"github.com/julianstephens/habitcards/internal/models"
)

// CohortStats counts completed habits within one frequency
type CohortStats struct {
	Frequency models.Frequency
	Completed int
	Total     int
}

// Ratio returns the completed fraction in [0, 1]; an empty cohort is 0
func (c CohortStats) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

// Percent returns the completed fraction as a rounded percentage
func (c CohortStats) Percent() int {
	return int(math.Round(c.Ratio() * 100))
}

// Stats summarizes completion for each frequency
type Stats struct {
	Daily   CohortStats
	Weekly  CohortStats
	Monthly CohortStats
}

// Cohorts returns the per-frequency stats in display order
func (s Stats) Cohorts() []CohortStats {
	return []CohortStats{s.Daily, s.Weekly, s.Monthly}
}

// Summarize counts completed and total habits per frequency. Habits with an
// unknown frequency are ignored.
func Summarize(habits []models.Habit) Stats {
	s := Stats{
		Daily:   CohortStats{Frequency: models.FrequencyDaily},
		Weekly:  CohortStats{Frequency: models.FrequencyWeekly},
		Monthly: CohortStats{Frequency: models.FrequencyMonthly},
	}
	for _, h := range habits {
		var c *CohortStats
		switch h.Frequency {
		case models.FrequencyDaily:
			c = &s.Daily
		case models.FrequencyWeekly:
			c = &s.Weekly
		case models.FrequencyMonthly:
			c = &s.Monthly
		default:
			continue
		}
		c.Total++
		if h.Completed {
			c.Completed++
		}
	}
	return s
}
