package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/backend"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitcards storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		n, err := copyData(c.Source, ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d key(s).\n", n)
	}
	return nil
}

// reset deletes a file-backed store, or empties a network one
func (c *InitCmd) reset(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Source != "" {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	switch backend.Detect(path) {
	case backend.KindSQLite, backend.KindJSON:
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
		return nil
	default:
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		keys, err := ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list existing keys: %w", err)
		}
		if err := ctx.Store.RemoveMany(keys); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
		fmt.Printf("Removed %d existing key(s) from %s\n", len(keys), ctx.Store.GetConfigPath())
		return nil
	}
}

// copyData copies every key from the store at source into dst in one write
func copyData(source string, dst storage.Provider) (int, error) {
	src, err := backend.Open(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}

	entries := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := src.Get(k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", k, err)
		}
		entries[k] = v
	}
	if err := dst.SetMany(entries); err != nil {
		return 0, fmt.Errorf("failed to write destination: %w", err)
	}
	return len(entries), nil
}
