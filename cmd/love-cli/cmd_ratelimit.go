package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"love-unlock/internal/app"
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Unlock rate limit maintenance",
}

var rateLimitPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete counters whose window ended longer ago than --older-than",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			retention := c.Config.RateLimitRetention
			if cmd.Flags().Changed("older-than") {
				retention, _ = cmd.Flags().GetDuration("older-than")
			}
			removed, err := c.Limiter.Purge(ctx, retention)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d counters\n", removed)
			return nil
		})
	},
}

func init() {
	rateLimitCmd.AddCommand(rateLimitPurgeCmd)
	rateLimitPurgeCmd.Flags().Duration("older-than", 0, "Idle time past the window before a counter is removed (default RATE_LIMIT_RETENTION)")
}
