package diet

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitcards/internal/cli"
	dietsvc "github.com/julianstephens/habitcards/internal/diet"
	apperrors "github.com/julianstephens/habitcards/internal/errors"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/validation"
)

type DietCmd struct {
	Plans   DietPlansCmd   `cmd:"" help:"List the built-in diet plans."`
	Show    DietShowCmd    `cmd:"" help:"Show a diet plan's meals."`
	Today   DietTodayCmd   `cmd:"" help:"Show today's calorie counter." default:"1"`
	Log     DietLogCmd     `cmd:"" help:"Record calories for today's meals."`
	Clear   DietClearCmd   `cmd:"" help:"Reset today's calorie counter."`
	History DietHistoryCmd `cmd:"" help:"Show the calorie history."`
}

type DietPlansCmd struct{}

func (c *DietPlansCmd) Run(ctx *cli.Context) error {
	for _, p := range dietsvc.Plans() {
		fmt.Printf("%-22s %5d kcal  %s\n", p.Title, p.Calories, p.Description)
	}
	return nil
}

type DietShowCmd struct {
	Plan string `arg:"" help:"Plan title or a unique prefix, e.g. 'muscle'."`
}

func (c *DietShowCmd) Run(ctx *cli.Context) error {
	p, err := dietsvc.FindPlan(c.Plan)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d kcal)\n%s\n", p.Title, p.Calories, p.Description)
	for _, meal := range models.Meals {
		fmt.Printf("\n%s\n", mealTitle(meal))
		for _, item := range p.Meals[meal] {
			fmt.Printf("  - %s\n", item)
		}
	}
	return nil
}

func mealTitle(m models.Meal) string {
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

type DietTodayCmd struct{}

func (c *DietTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	printCounter(ctx.Diet.Today(ctx.Now()))
	return nil
}

func printCounter(counter models.CalorieCounter) {
	values := map[models.Meal]int{
		models.MealBreakfast: counter.Breakfast,
		models.MealLunch:     counter.Lunch,
		models.MealDinner:    counter.Dinner,
		models.MealSnacks:    counter.Snacks,
	}
	for _, meal := range models.Meals {
		fmt.Printf("%-10s %5d kcal\n", mealTitle(meal), values[meal])
	}
	total := dietsvc.Total(counter)
	fmt.Printf("\nTotal %d / %d kcal  %s  %.0f%%\n", total, counter.TargetCalories, cli.ProgressBar(dietsvc.Progress(counter)/100, 20), dietsvc.Progress(counter))
	if dietsvc.OverTarget(counter) {
		fmt.Printf("Over target by %d kcal\n", total-counter.TargetCalories)
	}
}

// DietLogCmd overwrites the given meals; meals left unset keep their value.
type DietLogCmd struct {
	Breakfast string `short:"b" help:"Breakfast calories."`
	Lunch     string `short:"l" help:"Lunch calories."`
	Dinner    string `short:"d" help:"Dinner calories."`
	Snacks    string `short:"s" help:"Snack calories."`
	Target    string `short:"t" help:"Daily calorie target."`
}

func (c *DietLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := ctx.Now()
	counter := ctx.Diet.Today(now)
	fields := []struct {
		name  string
		input string
		dst   *int
	}{
		{"breakfast", c.Breakfast, &counter.Breakfast},
		{"lunch", c.Lunch, &counter.Lunch},
		{"dinner", c.Dinner, &counter.Dinner},
		{"snacks", c.Snacks, &counter.Snacks},
		{"target", c.Target, &counter.TargetCalories},
	}

	var errs []error
	changed := false
	for _, f := range fields {
		if strings.TrimSpace(f.input) == "" {
			continue
		}
		n, err := validation.ParseCalories(f.name, f.input)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = n
		changed = true
	}
	if err := apperrors.Join(errs...); err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("nothing to log; pass at least one of --breakfast, --lunch, --dinner, --snacks or --target")
	}

	if err := ctx.Diet.Save(counter, now); err != nil {
		return err
	}
	printCounter(counter)
	return nil
}

type DietClearCmd struct{}

func (c *DietClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Diet.Clear(); err != nil {
		return err
	}
	fmt.Println("Calorie counter cleared.")
	return nil
}

type DietHistoryCmd struct {
	Clear bool `help:"Delete the whole history."`
}

func (c *DietHistoryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Clear {
		if err := ctx.Diet.ClearHistory(); err != nil {
			return err
		}
		fmt.Println("Calorie history cleared.")
		return nil
	}

	entries := ctx.Diet.History()
	if len(entries) == 0 {
		fmt.Println("No calorie history yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %5d kcal  (B %d / L %d / D %d / S %d)\n", e.Date, e.TotalCalories, e.Breakfast, e.Lunch, e.Dinner, e.Snacks)
	}
	fmt.Printf("\nAverage: %d kcal/day over %d day(s)\n", dietsvc.Average(entries), len(entries))
	return nil
}
