package habits

import (
	"fmt"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/tracker"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	habits, err := refresh(ctx)
	if err != nil {
		return err
	}

	stats := tracker.Summarize(habits)
	fmt.Println("Habit completion")
	fmt.Println()
	for _, cohort := range stats.Cohorts() {
		fmt.Printf("%-8s %d / %d  %s  %d%% completed\n",
			cohort.Frequency, cohort.Completed, cohort.Total, cli.ProgressBar(cohort.Ratio(), 20), cohort.Percent())
	}
	return nil
}
