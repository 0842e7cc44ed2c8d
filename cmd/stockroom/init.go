// Init command initializes the catalog storage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the catalog storage",
	Long: `Init creates the configuration and data directories and opens the
storage backend once, leaving an empty catalog ready for use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The store is already open at this point; just confirm.
		fmt.Println("Stockroom initialized successfully")
		return nil
	},
}
