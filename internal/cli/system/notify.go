package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitcards/internal/cli"
	habitsvc "github.com/julianstephens/habitcards/internal/habits"
	"github.com/julianstephens/habitcards/internal/models"
)

// NotifyCmd reminds the user of the habits still open in the current
// period. It is meant to be run from a scheduler such as cron.
type NotifyCmd struct {
	DryRun bool   `help:"Print notifications to stdout instead of sending them."`
	Text   string `help:"Send this text instead of the pending-habit reminder."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Profile.Settings().NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	msg := c.Text
	if msg == "" {
		habits, err := ctx.RefreshHabits()
		if err != nil && habits == nil {
			return err
		}
		msg = reminder(habitsvc.Pending(habits))
		if msg == "" {
			if c.DryRun {
				fmt.Println("No pending habits.")
			}
			return nil
		}
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}
	if err := ctx.Notifier.Notify(context.Background(), msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func reminder(pending []models.Habit) string {
	switch len(pending) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("1 habit left: %s", pending[0].Title)
	default:
		return fmt.Sprintf("%d habits left, next up: %s", len(pending), pending[0].Title)
	}
}
