package types

import "errors"

// Config holds backend selection and parameters for Store.Open.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	Sync    string `json:"sync" yaml:"sync"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Snapshot sync strategies for the SQLite backend. Immediate writes the
// JSONL snapshots after every mutation; on_close defers them to Close.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrSyncUnknown    = errors.New("unknown sync strategy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendMemory: true,
}

// knownSyncStrategies lists the sync strategies that Validate accepts.
var knownSyncStrategies = map[string]bool{
	SyncImmediate: true,
	SyncOnClose:   true,
}

// GetSync returns the effective sync strategy, defaulting to immediate.
func (c Config) GetSync() string {
	if c.Sync == "" {
		return SyncImmediate
	}
	return c.Sync
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Sync != "" && !knownSyncStrategies[c.Sync] {
		return ErrSyncUnknown
	}
	return nil
}
