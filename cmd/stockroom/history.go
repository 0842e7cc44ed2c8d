// History command shows the audit movements recorded for an item.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukaforge/stockroom/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the movement history of an item",
	Long: `History lists every recorded movement for an item in
chronological order. Removed items keep their history.

Example:
  stockroom history 1
  stockroom history 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	movements, err := service.ItemHistory(id)
	if err != nil {
		return fmt.Errorf("item history: %w", err)
	}

	if flagJSON {
		return printJSON(movements)
	}
	printMovementTable(id, movements)
	return nil
}

// printMovementTable writes movements in a tabular format.
func printMovementTable(id int64, movements []types.Movement) {
	if len(movements) == 0 {
		fmt.Printf("No movements recorded for item %d.\n", id)
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "KIND\tDELTA\tQTY\tWHEN")
	fmt.Fprintln(w, "----\t-----\t---\t----")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%+d\t%d\t%s\n",
			m.Kind,
			m.Delta,
			m.Quantity,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d movement(s)\n", len(movements))
}
