package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"love-unlock/internal/app"
	"love-unlock/internal/domain/unlock"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect and reconcile unlock requests",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print recorded unlock requests, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		code, _ := cmd.Flags().GetString("code")
		limit, _ := cmd.Flags().GetInt("limit")
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			items, err := c.Unlocks.List(ctx, unlock.Filter{Code: code, Limit: limit})
			if err != nil {
				return err
			}
			return printLedger(cmd.OutOrStdout(), items)
		})
	},
}

var ledgerReconcileCmd = &cobra.Command{
	Use:   "reconcile [code]",
	Short: "Promote pages that have a recorded unlock but are still below a paid plan",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				promoted, err := c.Unlocks.ReconcileCode(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s promoted: %t\n", args[0], promoted)
				return nil
			}

			report, err := c.Unlocks.Reconcile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "checked %d pages, promoted %d\n", report.Checked, len(report.Promoted))
			for _, code := range report.Promoted {
				fmt.Fprintf(out, "  %s\n", code)
			}
			return nil
		})
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerReconcileCmd)

	ledgerListCmd.Flags().String("code", "", "Only show requests for this page code")
	ledgerListCmd.Flags().Int("limit", unlock.DefaultListLimit, "Maximum rows")
}

func printLedger(w io.Writer, items []*unlock.Request) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tCODE\tPLAN\tAMOUNT\tTRX\tSENDER")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.CreatedAt.UTC().Format(time.RFC3339),
			item.Code,
			item.Plan,
			item.Amount.StringFixed(2),
			item.TransactionID,
			item.SenderSuffix,
		)
	}
	return tw.Flush()
}
