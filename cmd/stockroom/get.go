// Get command shows one catalog item by id.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an item by id",
	Long: `Get retrieves one inventory item and displays it.

Example:
  stockroom get 1
  stockroom get 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := service.GetItem(id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	printItem(item)
	return nil
}
