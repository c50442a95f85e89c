package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"love-unlock/internal/app"
	"love-unlock/internal/config"
	"love-unlock/internal/infrastructure/logger"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "love-cli",
	Short: "Operator tooling for the love unlock service",
	Long: `love-cli runs maintenance tasks against the love unlock database.

Configuration is read from the same environment variables (and .env file) as the server.

Examples:
  love-cli migrate up
  love-cli plan set K7Q2MZX ULT199
  love-cli ratelimit purge --older-than 48h
  love-cli ledger list --code K7Q2MZX
  love-cli ledger reconcile`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(rateLimitCmd)
	rootCmd.AddCommand(ledgerCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func loadRuntime(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}

// withContainer builds the service container for a command and closes it afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close container")
		}
	}()
	return fn(ctx, c)
}
