package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apexfinance/internal/importer"
)

func importCSVCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-csv FILE",
		Short: "Import transactions from a CSV export",
		Long: `Import transactions from a CSV file with the columns
date, category, description, amount and essential.

The category column holds the full category path, e.g. "Housing / Rent".
Positive amounts are income and negative amounts are expenses. The import
is rejected as a whole if any row is invalid or names an unknown category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wsID, err := requireWorkspace()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			records, err := importer.Parse(f)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Printf("%d records parsed, nothing imported\n", len(records))
				return nil
			}

			svcs, closeFn, err := openServices()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := svcs.Transactions.ImportTransactions(wsID, records)
			if err != nil {
				return err
			}

			svcs.Audit.Log(wsID, "IMPORT_TRANSACTIONS", "transaction", "", "cli",
				map[string]interface{}{"file": args[0], "count": n})

			fmt.Printf("Imported %d transactions\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate the file without importing")
	return cmd
}
