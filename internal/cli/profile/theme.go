package profile

import (
	"fmt"

	"github.com/julianstephens/habitcards/internal/cli"
)

type ThemeCmd struct {
	Show   ThemeShowCmd   `cmd:"" help:"Show the current theme." default:"1"`
	Set    ThemeSetCmd    `cmd:"" help:"Choose the dark or light theme."`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between dark and light."`
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

type ThemeShowCmd struct{}

func (c *ThemeShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	fmt.Printf("Theme: %s\n", themeName(ctx.Profile.DarkMode()))
	return nil
}

type ThemeSetCmd struct {
	Mode string `arg:"" enum:"dark,light" help:"dark or light."`
}

func (c *ThemeSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	dark := c.Mode == "dark"
	if err := ctx.Profile.SetDarkMode(dark); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s.\n", themeName(dark))
	return nil
}

type ThemeToggleCmd struct{}

func (c *ThemeToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	dark, err := ctx.Profile.ToggleDarkMode()
	if err != nil {
		return err
	}
	fmt.Printf("Theme set to %s.\n", themeName(dark))
	return nil
}
