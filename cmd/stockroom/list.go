// List command queries the catalog, optionally filtered by category.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/stockroom/pkg/types"
)

var (
	listCategory      string
	listUncategorized bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	Long: `List displays the current items in ascending id order.

Use --category to show one category, or --uncategorized for items
without a category.

Example:
  stockroom list
  stockroom list --category Hardware
  stockroom list --uncategorized --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().BoolVar(&listUncategorized, "uncategorized", false, "show only items without a category")
	listCmd.MarkFlagsMutuallyExclusive("category", "uncategorized")
}

func runList(cmd *cobra.Command, args []string) error {
	var filter types.Filter
	if listUncategorized {
		filter.Category = &types.Category{}
	} else if listCategory != "" {
		category := types.NewCategory(listCategory)
		filter.Category = &category
	}

	items, err := service.ListItems(filter)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	if flagJSON {
		return printJSON(items)
	}
	printItemTable(items)
	return nil
}
