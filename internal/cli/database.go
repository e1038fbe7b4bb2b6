package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/demo"
)

func newMigrateCommand(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.Database.Path
			}

			// NewDatabase applies migrations on open.
			db, err := database.NewDatabase(dbPath, database.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return db.Close()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (overrides DATABASE_FILE)")
	return cmd
}

func newResetDBCommand(a *app) *cobra.Command {
	var (
		dbPath string
		seed   bool
	)

	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Delete the database file and recreate it from migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.Database.Path
			}
			return resetDatabase(cmd.Context(), dbPath, seed, a.logger)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (overrides DATABASE_FILE)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Load the sample library after the reset")
	return cmd
}

// resetDatabase removes the database and its WAL files, re-creates the
// schema and optionally seeds it.
func resetDatabase(ctx context.Context, dbPath string, seed bool, logger *zap.Logger) error {
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	logger.Info("removed database", zap.String("path", dbPath))

	db, err := database.NewDatabase(dbPath, database.WithLogger(logger))
	if err != nil {
		return err
	}
	defer db.Close()

	if !seed {
		return nil
	}

	result, err := demo.Seed(ctx, db)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.Info("seeded database",
		zap.Int("users", result.Users),
		zap.Int("books", result.Books),
		zap.Int("lists", result.Lists))
	return nil
}
