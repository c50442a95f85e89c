package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"love-unlock/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Page plan administration",
}

var planSetCmd = &cobra.Command{
	Use:   "set <code> <plan>",
	Short: "Override the plan of a page",
	Long:  `Sets the plan of a page regardless of payments. Plans: FREE, CRUSH49, ROM99, ULT199.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			target, err := c.Pages.OverridePlan(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], target)
			return nil
		})
	},
}

func init() {
	planCmd.AddCommand(planSetCmd)
}
