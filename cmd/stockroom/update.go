// Update command applies a partial change to an item. Only flags the user
// actually set end up in the patch, so unset fields keep their values.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/stockroom/pkg/types"
)

var (
	updateName          string
	updateQuantity      int64
	updateCategory      string
	updateUncategorized bool
	updatePrice         float64
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an item",
	Long: `Update changes the given fields of an item and leaves the rest
untouched. The merged record is re-validated before it is persisted.

Example:
  stockroom update 1 --name "Widget Mk2"
  stockroom update 1 --quantity 25 --price 3.10
  stockroom update 1 --uncategorized`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new item name")
	updateCmd.Flags().Int64Var(&updateQuantity, "quantity", 0, "new quantity")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category label")
	updateCmd.Flags().BoolVar(&updateUncategorized, "uncategorized", false, "clear the category")
	updateCmd.Flags().Float64Var(&updatePrice, "price", 0, "new unit price")
	updateCmd.MarkFlagsMutuallyExclusive("category", "uncategorized")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var patch types.Patch
	if cmd.Flags().Changed("name") {
		patch.Name = &updateName
	}
	if cmd.Flags().Changed("quantity") {
		patch.Quantity = &updateQuantity
	}
	if cmd.Flags().Changed("category") {
		category := types.NewCategory(updateCategory)
		patch.Category = &category
	}
	if updateUncategorized {
		patch.Category = &types.Category{}
	}
	if cmd.Flags().Changed("price") {
		patch.UnitPrice = &updatePrice
	}

	if patch.Empty() {
		return fmt.Errorf("nothing to update: set at least one of --name, --quantity, --category, --uncategorized, --price")
	}

	item, err := service.UpdateItem(id, patch)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Updated item %d\n", item.ID)
	printItem(item)
	return nil
}
