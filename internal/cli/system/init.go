package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Erase existing storage before initialization."`
	Source string `help:"Storage path or connection string to copy records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.erase(ctx); err != nil {
			return err
		}
	} else if err := ctx.Store.Load(); err == nil {
		if err := storage.EnsureDefaultSettings(ctx.Store); err != nil {
			return err
		}
		ctx.Printf("Storage already initialized at: %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := storage.EnsureDefaultSettings(ctx.Store); err != nil {
		return err
	}
	ctx.Printf("Initialized quitnow storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Println("Copying records from source...")
		n, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d record(s).\n", n)
	}
	return nil
}

// erase deletes a local storage file, or empties a remote store.
func (c *InitCmd) erase(ctx *cli.Context) error {
	path, local := ctx.LocalPath()
	if !local {
		if err := ctx.Store.Load(); err != nil {
			// nothing to erase yet
			return nil
		}
		keys, err := ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list existing records: %w", err)
		}
		for _, key := range keys {
			if err := ctx.Store.Remove(key); err != nil {
				return fmt.Errorf("failed to remove record %s: %w", key, err)
			}
		}
		ctx.Printf("Removed %d existing record(s)\n", len(keys))
		return nil
	}

	if c.Source != "" {
		absPath, _ := filepath.Abs(path)
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == absPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, source string) (int, error) {
	src, err := cli.NewProvider(source, cli.SourceFlag)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	return storage.CopyAll(src, ctx.Store)
}
