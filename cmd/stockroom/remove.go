// Remove command deletes an item from the catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the catalog",
	Long: `Remove deletes the item with the given id. The id is permanently
retired and never assigned to another item; the item's movement history
stays available through the history command.

Example:
  stockroom remove 1`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := service.RemoveItem(id); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}

	fmt.Printf("Removed item %d\n", id)
	return nil
}
