package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"love-unlock/internal/app"
	"love-unlock/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the embedded SQL migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	db, err := database.Connect(app.NewDatabaseConfig(cfg))
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	direction := database.Direction(args[0])
	if err := database.Migrate(ctx, db, direction, log); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done\n", direction)
	return nil
}
