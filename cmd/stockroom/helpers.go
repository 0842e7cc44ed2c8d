// Shared helpers for stockroom CLI commands: backend construction, id
// parsing, exit-code mapping, and output formatting.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dukaforge/stockroom/internal/memory"
	"github.com/dukaforge/stockroom/internal/sqlite"
	"github.com/dukaforge/stockroom/pkg/types"
)

// Exit codes, one per error kind so scripts can branch on the outcome.
const (
	exitSuccess    = 0
	exitError      = 1 // usage errors and anything unclassified
	exitValidation = 2
	exitNotFound   = 3
	exitQuantity   = 4
	exitStorage    = 5
)

// newStore constructs the backend selected by configuration.
func newStore(backend string) (types.Store, error) {
	switch backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("backend %q: %w", backend, types.ErrBackendUnknown)
	}
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrEmptyName),
		errors.Is(err, types.ErrNegativeQuantity),
		errors.Is(err, types.ErrNegativePrice):
		return exitValidation
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID):
		return exitNotFound
	case errors.Is(err, types.ErrInvalidQuantity):
		return exitQuantity
	case errors.Is(err, types.ErrStoreClosed), errors.Is(err, types.ErrStoreOpen),
		errors.Is(err, types.ErrBackendUnknown), errors.Is(err, types.ErrBackendEmpty),
		errors.Is(err, types.ErrSyncUnknown):
		return exitStorage
	default:
		return exitError
	}
}

// parseID parses a positive item id from a command argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: %w", arg, types.ErrInvalidID)
	}
	return id, nil
}

// printJSON writes any value as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// printItem writes one item in a human-readable detail block.
func printItem(item types.Item) {
	fmt.Printf("ID:         %d\n", item.ID)
	fmt.Printf("Name:       %s\n", item.Name)
	fmt.Printf("Quantity:   %d\n", item.Quantity)
	fmt.Printf("Category:   %s\n", item.Category)
	fmt.Printf("Unit price: %.2f\n", item.UnitPrice)
	fmt.Printf("Created:    %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:    %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
}

// printItemTable writes items in a tabular format.
func printItemTable(items []types.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tQTY\tCATEGORY\tPRICE")
	fmt.Fprintln(w, "--\t----\t---\t--------\t-----")
	for _, item := range items {
		name := item.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.2f\n",
			item.ID,
			name,
			item.Quantity,
			item.Category,
			item.UnitPrice,
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d item(s)\n", len(items))
}
