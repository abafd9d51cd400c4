package system

import (
	"fmt"

	"github.com/julianstephens/habitcards/internal/cli"
)

// versioned is implemented by the SQL stores
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(versioned)
	if !ok {
		fmt.Println("This storage backend has no schema; nothing to migrate.")
		return nil
	}

	// Load refuses a schema newer than this binary; Init applies pending migrations
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	before, _, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	after, _, err := store.SchemaVersion()
	if err != nil {
		return err
	}

	if after == before {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", after-before)
	}
	return nil
}
