package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"apexfinance/internal/services"
)

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Print the Apex Score of a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsID, err := requireWorkspace()
			if err != nil {
				return err
			}

			svcs, closeFn, err := openServices()
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svcs.Dashboard.GetScore(wsID)
			if err != nil {
				return err
			}

			printScore(os.Stdout, report)
			return nil
		},
	}
}

func printScore(w io.Writer, report *services.ScoreReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Score\t%d (%s)\n", report.Score, report.Band)
	fmt.Fprintf(tw, "Mode\t%s\n", report.Mode)
	fmt.Fprintf(tw, "Penalty\t%s\n", report.Penalty.StringFixed(2))
	fmt.Fprintf(tw, "Income\t%s\n", report.Totals.Income.StringFixed(2))
	fmt.Fprintf(tw, "Expenses\t%s\n", report.Totals.Expense.StringFixed(2))
	fmt.Fprintf(tw, "Non-essential\t%s\n", report.Totals.NonEssentialExpense.StringFixed(2))
	tw.Flush()

	for _, insight := range report.Insights {
		fmt.Fprintf(w, "\n[%s] %s\n  %s\n", insight.Type, insight.Title, insight.Description)
	}
}
