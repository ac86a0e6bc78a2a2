package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/gitops"
	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/logger"
	"github.com/cleared-dev/cashbook/internal/store"
)

func newInitCommand() *cobra.Command {
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, now().Year()); err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			log.Debug().Str("dir", absDir).Msg("initialized ledger")

			if !git {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Initialized cashbook ledger at %s\n", absDir)
				return err
			}
			hash, err := initRepo(cmd.Context(), absDir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Initialized cashbook ledger at %s (%s)\n", absDir, hash)
			return err
		},
	}

	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository and commit the new ledger")

	return cmd
}

func initRepo(ctx context.Context, dir string) (string, error) {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return "", err
	}
	repo, err := gitops.Init(ctx, dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", err
	}
	hash, err := repo.Commit(ctx, "init: cashbook ledger")
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func runInit(dir string, year int) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write cashbook.yaml.
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write empty ledger files for this year unless they exist.
	bucket := strconv.Itoa(year)
	for _, direction := range []ledger.Direction{ledger.Incoming, ledger.Outgoing} {
		path := filepath.Join(dir, store.FileName(direction, bucket))
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if _, err := store.WriteFile(dir, direction, bucket, nil); err != nil {
			return err
		}
	}

	return nil
}
