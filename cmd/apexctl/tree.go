package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"apexfinance/internal/services"
)

func treeCmd() *cobra.Command {
	var byPath bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the category hierarchy with rolled-up totals",
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

			tree, err := svcs.Categories.GetCategoryTree(wsID, byPath)
			if err != nil {
				return err
			}

			printTree(os.Stdout, tree)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byPath, "by-path", false, "sort siblings alphabetically by full path")
	return cmd
}

func printTree(w io.Writer, tree *services.CategoryTree) {
	if len(tree.Roots) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}

	for _, root := range tree.Roots {
		printNode(w, root)
	}

	fmt.Fprintf(w, "\n%d categories, %d projects, depth %d\n",
		tree.Stats.TotalCategories, tree.Stats.ProjectCount, tree.Stats.MaxLevel)
	if len(tree.Cycles) > 0 {
		fmt.Fprintf(w, "warning: cycle broken at %s\n", strings.Join(tree.Cycles, ", "))
	}
}

func printNode(w io.Writer, node *services.CategoryTreeNode) {
	indent := strings.Repeat("  ", node.Level-1)
	line := fmt.Sprintf("%s%s  %s", indent, node.Name, node.Total.StringFixed(2))
	if node.MonthlyBudget != nil {
		line += fmt.Sprintf("  (%s%% of %s)", node.BudgetUsage.StringFixed(0), node.MonthlyBudget.StringFixed(2))
	}
	if node.IsProject {
		line += "  [project]"
	}
	fmt.Fprintln(w, line)

	for _, child := range node.Children {
		printNode(w, child)
	}
}
