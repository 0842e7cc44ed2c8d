// Add command creates a new catalog item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/stockroom/pkg/types"
)

var (
	addName     string
	addQuantity int64
	addCategory string
	addPrice    float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item to the catalog",
	Long: `Add creates a new inventory item with the given name, quantity,
category, and unit price. The store assigns the item id.

Example:
  stockroom add --name "Widget" --quantity 10 --category Hardware --price 2.50
  stockroom add --name "Manual" --json`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "item name (required)")
	addCmd.Flags().Int64Var(&addQuantity, "quantity", 0, "initial quantity")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category label (default: uncategorized)")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "unit price")
	_ = addCmd.MarkFlagRequired("name")
}

func runAdd(cmd *cobra.Command, args []string) error {
	item, err := service.AddItem(addName, addQuantity, types.NewCategory(addCategory), addPrice)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Added item %d: %s\n", item.ID, item.Name)
	return nil
}
