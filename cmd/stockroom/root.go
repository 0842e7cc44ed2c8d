// Root command for the stockroom CLI. The store is opened once before any
// subcommand runs and closed after it finishes, so every invocation is one
// open-operate-close cycle against the local catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/stockroom/internal/inventory"
	"github.com/dukaforge/stockroom/internal/paths"
	"github.com/dukaforge/stockroom/pkg/stockroom"
	"github.com/dukaforge/stockroom/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// store and service are initialized by PersistentPreRunE for every command
// that touches the catalog.
var (
	store   types.Store
	service *inventory.Service
)

var rootCmd = &cobra.Command{
	Use:                "stockroom",
	Short:              "Stockroom is a local-first inventory manager",
	Version:            stockroom.Version,
	PersistentPreRunE:  initStore,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeStore() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.stockroom-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(historyCmd)
}

// initStore loads the configuration, opens the selected backend, and wires
// the service. Commands that never touch the catalog skip it.
func initStore(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	storeCfg := types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Sync:    cfg.GetString(cfgKeySync),
	}

	store, err = newStore(storeCfg.Backend)
	if err != nil {
		return err
	}
	if err := store.Open(storeCfg); err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	service = inventory.NewService(store)
	return nil
}

// closeStore closes the store, flushing any deferred snapshot.
func closeStore() error {
	if store != nil {
		return store.Close()
	}
	return nil
}
