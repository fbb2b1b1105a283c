package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/bankwallet/internal/cli"
	"github.com/Veraticus/bankwallet/internal/config"
	"github.com/Veraticus/bankwallet/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Migrations are additive: existing favorites, preferences and sessions
are preserved.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetBool("status")

			dbPath := config.DatabasePath()
			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			return runMigrate(cmd.Context(), cmd.OutOrStdout(), store, status)
		},
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(ctx context.Context, out io.Writer, store *storage.SQLiteStorage, statusOnly bool) error {
	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if statusOnly {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Database: %s", store.Path())))
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Schema version: %d (latest %d)", current, storage.ExpectedSchemaVersion)))
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning("Migrations pending, run 'wallet migrate'"))
		}
		return nil
	}

	slog.Info("Running database migrations", "database", store.Path(), "from_version", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database at schema version %d", storage.ExpectedSchemaVersion)))
	return nil
}
