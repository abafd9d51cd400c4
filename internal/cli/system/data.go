package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/constants"
)

type DataCmd struct {
	Clear DataClearCmd `cmd:"" help:"Delete stored habit data."`
}

// DataClearCmd removes the habit cards and reset markers, and with --all
// every other key the app owns.
type DataClearCmd struct {
	All bool `help:"Also remove calorie data, profile, theme and settings."`
	Yes bool `short:"y" help:"Do not ask for confirmation."`

	in io.Reader
}

func (c *DataClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	keys := constants.HabitKeys
	what := "all habit cards and their reset history"
	if c.All {
		keys = constants.AllKeys
		what = "ALL habitcards data"
	}

	if !c.Yes {
		ok, err := confirm(c.input(), fmt.Sprintf("This will permanently delete %s.", what))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.RemoveMany(keys); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	fmt.Println("✓ Data cleared.")
	return nil
}

func (c *DataClearCmd) input() io.Reader {
	if c.in != nil {
		return c.in
	}
	return os.Stdin
}

func confirm(in io.Reader, warning string) (bool, error) {
	fmt.Println("⚠️  WARNING: " + warning)
	fmt.Print("Continue? [y/N]: ")

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
