package habits

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/habitcards/internal/cli"
	habitsvc "github.com/julianstephens/habitcards/internal/habits"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/notifier"
	"github.com/julianstephens/habitcards/internal/timer"
	"github.com/julianstephens/habitcards/internal/validation"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit card."`
	List     HabitListCmd     `cmd:"" help:"List habit cards." default:"1"`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit card."`
	Start    HabitStartCmd    `cmd:"" help:"Run the countdown for a habit."`
	Complete HabitCompleteCmd `cmd:"" help:"Mark a habit as completed without the timer."`
	Refresh  HabitRefreshCmd  `cmd:"" help:"Reset habits whose period has rolled over."`
	Validate HabitValidateCmd `cmd:"" help:"Check stored habits for conflicts."`
}

// refresh runs the reset pass. Write failures are printed and the command
// carries on with the evaluated list.
func refresh(ctx *cli.Context) ([]models.Habit, error) {
	habits, err := ctx.RefreshHabits()
	if err != nil {
		if habits == nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return habits, nil
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `short:"d" help:"What the habit involves." required:""`
	Type        string `short:"t" help:"Category: cardio, strength, meditation or study." default:"cardio"`
	Frequency   string `short:"f" help:"How often it resets: daily, weekly or monthly." default:"daily"`
	Hours       int    `help:"Countdown hours."`
	Minutes     int    `short:"m" help:"Countdown minutes."`
	Seconds     int    `short:"s" help:"Countdown seconds."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := refresh(ctx); err != nil {
		return err
	}

	h, err := ctx.Habits.Add(validation.HabitInput{
		Title:       c.Title,
		Description: c.Description,
		HabitType:   c.Type,
		Frequency:   c.Frequency,
		Hours:       c.Hours,
		Minutes:     c.Minutes,
		Seconds:     c.Seconds,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, %s, %s)\n", h.Title, h.HabitType, h.Frequency, timer.FormatDuration(h.DurationSeconds))
	fmt.Printf("ID: %s\n", h.ID)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include completed habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := refresh(ctx)
	if err != nil {
		return err
	}

	shown := habitsvc.Pending(habits)
	if c.All {
		shown = habitsvc.Newest(habits)
	}

	if len(shown) == 0 {
		if len(habits) > 0 {
			fmt.Println("All habits completed for now.")
		} else {
			fmt.Println("No habits found. Add one with 'habitcards habit add'.")
		}
		return nil
	}

	for _, h := range shown {
		printHabit(os.Stdout, h)
	}
	return nil
}

func printHabit(w io.Writer, h models.Habit) {
	status := "[ ]"
	if h.Completed {
		status = "[x]"
	}
	fmt.Fprintf(w, "%s %s  %s  %-10s %-7s  %s\n", status, ShortID(h.ID), timer.FormatDuration(h.DurationSeconds), h.HabitType, h.Frequency, h.Title)
	if h.Description != "" {
		fmt.Fprintf(w, "    %s\n", h.Description)
	}
}

// ShortID trims a UUID to its first block for display
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := refresh(ctx); err != nil {
		return err
	}
	h, err := ctx.Habits.Delete(c.Habit)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Title)
	return nil
}

type HabitCompleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitCompleteCmd) Run(ctx *cli.Context) error {
	if _, err := refresh(ctx); err != nil {
		return err
	}
	h, err := ctx.Habits.Complete(c.Habit, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Completed habit: %s\n", h.Title)
	return nil
}

type HabitRefreshCmd struct{}

func (c *HabitRefreshCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RefreshHabits(); err != nil {
		return err
	}
	m := ctx.Habits.Markers()
	fmt.Printf("Reset markers: daily %s, weekly %s, monthly %s\n", m.Daily, m.Weekly, m.Monthly)
	return nil
}

type HabitStartCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Quiet bool   `short:"q" help:"Only print when the countdown finishes."`

	ticks timer.TickSource
}

func (c *HabitStartCmd) Run(ctx *cli.Context) error {
	if _, err := refresh(ctx); err != nil {
		return err
	}
	h, err := ctx.Habits.Find(c.Habit)
	if err != nil {
		return err
	}
	if h.Completed {
		fmt.Printf("%s is already completed for this %s.\n", h.Title, period(h.Frequency))
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []timer.Option
	if c.ticks != nil {
		opts = append(opts, timer.WithTickSource(c.ticks))
	}
	w := io.Writer(os.Stdout)
	if c.Quiet {
		w = io.Discard
	}
	return runCountdown(runCtx, ctx, h, timer.New(h.Duration(), opts...), w)
}

// runCountdown drives cd until it finishes or runCtx is cancelled. Only a
// finished countdown marks the habit completed.
func runCountdown(runCtx context.Context, ctx *cli.Context, h models.Habit, cd *timer.Countdown, w io.Writer) error {
	fmt.Fprintf(w, "Starting %s (%s). Press Ctrl-C to stop.\n", h.Title, timer.FormatDuration(h.DurationSeconds))
	cd.Start(runCtx)

	for {
		select {
		case <-runCtx.Done():
			fmt.Printf("\nStopped %s with %s left.\n", h.Title, timer.FormatDuration(int(cd.Remaining().Seconds())))
			return nil
		case rem := <-cd.Updates():
			fmt.Fprintf(w, "\r%s  %s ", timer.FormatDuration(int(rem.Seconds())), cli.ProgressBar(cd.Progress(), 30))
		case <-cd.Done():
			fmt.Fprintln(w)
			done, err := ctx.Habits.Complete(h.ID, ctx.Now())
			if err != nil {
				return fmt.Errorf("countdown finished but the habit could not be saved: %w", err)
			}
			fmt.Printf("Completed habit: %s\n", done.Title)
			notify(runCtx, ctx, done)
			return nil
		}
	}
}

func notify(runCtx context.Context, ctx *cli.Context, h models.Habit) {
	if ctx.Notifier == nil || !ctx.Profile.Settings().NotificationsEnabled {
		return
	}
	if err := ctx.Notifier.Notify(runCtx, notifier.HabitCompleted(h)); err != nil {
		logger.Warn("Notification not sent", "error", err)
	}
}

func period(f models.Frequency) string {
	switch f {
	case models.FrequencyWeekly:
		return "week"
	case models.FrequencyMonthly:
		return "month"
	default:
		return "day"
	}
}

type HabitValidateCmd struct {
	Fix bool `help:"Remove duplicate habits, keeping the oldest of each title, and clear reset markers dated in the future."`
}

func (c *HabitValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits := ctx.Habits.List()
	v := validation.New()
	result := v.ValidateHabits(habits)
	result.Conflicts = append(result.Conflicts, v.ValidateMarkers(ctx.Habits.Markers(), ctx.Now()).Conflicts...)

	fmt.Println(strings.TrimRight(result.FormatReport(), "\n"))
	if !result.HasConflicts() {
		return nil
	}

	if !c.Fix {
		fmt.Println("\nRun with --fix to remove duplicate habits and future reset markers.")
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}

	actions := validation.AutoFixDuplicateTitles(result.Conflicts, habits, func(id string) error {
		_, err := ctx.Habits.Delete(id)
		return err
	})
	actions = append(actions, validation.AutoFixFutureMarkers(result.Conflicts, ctx.Habits.ClearMarker)...)
	if len(actions) == 0 {
		fmt.Println("\nNothing could be fixed automatically.")
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	fmt.Println("\nFixes applied:")
	for _, a := range actions {
		fmt.Printf("- %s\n", a.Action)
	}
	return nil
}
