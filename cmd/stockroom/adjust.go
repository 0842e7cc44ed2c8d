// Adjust command changes an item's quantity by a signed delta.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <id> <delta>",
	Short: "Adjust an item's quantity by a signed amount",
	Long: `Adjust adds delta to the item's quantity. A negative delta removes
stock; the operation fails, changing nothing, if the result would be
negative.

Example:
  stockroom adjust 1 25
  stockroom adjust 1 -5`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

func runAdjust(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("delta %q is not an integer", args[1])
	}

	item, err := service.AdjustQuantity(id, delta)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Item %d quantity is now %d\n", item.ID, item.Quantity)
	return nil
}
