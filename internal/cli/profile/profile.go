package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitcards/internal/cli"
	profilesvc "github.com/julianstephens/habitcards/internal/profile"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show the greeting, week strip and profile." default:"1"`
	Set  ProfileSetCmd  `cmd:"" help:"Create or update the profile."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := ctx.Now()
	p, err := ctx.Profile.Load()
	if err != nil && !errors.Is(err, profilesvc.ErrNoProfile) {
		return err
	}

	fmt.Println(profilesvc.Greeting(now, p.Name))
	fmt.Println(profilesvc.Headline(now))
	fmt.Println(weekStrip(profilesvc.WeekStrip(now)))
	fmt.Println()

	if errors.Is(err, profilesvc.ErrNoProfile) {
		fmt.Println("No profile yet. Create one with 'habitcards profile set'.")
		return nil
	}

	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Age:         %d\n", p.Age)
	fmt.Printf("Occupation:  %s\n", p.Occupation)
	fmt.Printf("Gender:      %s\n", p.Gender)
	if p.Frequency != "" {
		fmt.Printf("Exercise:    %s\n", p.Frequency)
	}
	fmt.Printf("About:       %s\n", p.Description)
	if p.PhotoPath != "" {
		fmt.Printf("Photo:       %s\n", p.PhotoPath)
	}
	if p.LastUpdated != nil {
		fmt.Printf("Updated:     %s\n", humanize.RelTime(*p.LastUpdated, now, "ago", "from now"))
	}
	return nil
}

// weekStrip renders the Sunday to Saturday strip with today bracketed
func weekStrip(days []profilesvc.StripDay) string {
	parts := make([]string, len(days))
	for i, d := range days {
		label := d.Label()
		if d.Status == profilesvc.DayToday {
			label = "[" + label + "]"
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

// ProfileSetCmd updates the given fields and keeps the rest of the stored profile.
type ProfileSetCmd struct {
	Name        string `help:"Your name (at least 3 characters)."`
	Age         string `help:"Your age."`
	Occupation  string `help:"Your occupation."`
	Gender      string `help:"Male, Female or Other."`
	Frequency   string `help:"How often you exercise."`
	Description string `help:"A short description of yourself."`
	Photo       string `help:"Path to a profile photo." type:"path"`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	current, err := ctx.Profile.Load()
	if err != nil && !errors.Is(err, profilesvc.ErrNoProfile) {
		return err
	}
	in := profilesvc.InputFrom(current)
	overrides := []struct {
		value string
		dst   *string
	}{
		{c.Name, &in.Name},
		{c.Age, &in.Age},
		{c.Occupation, &in.Occupation},
		{c.Gender, &in.Gender},
		{c.Frequency, &in.Frequency},
		{c.Description, &in.Description},
		{c.Photo, &in.PhotoPath},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}

	p, err := ctx.Profile.Save(in)
	if err != nil {
		return err
	}
	fmt.Printf("Profile saved for %s.\n", p.Name)
	return nil
}
