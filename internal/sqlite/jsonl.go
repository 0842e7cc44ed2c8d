// JSONL snapshot helpers. The snapshot files in DataDir are the durable
// source of truth; every write goes through the temp-file, fsync, rename
// pattern so a crash mid-write can never leave a torn file behind.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot file names inside DataDir.
const (
	itemsFile     = "items.jsonl"
	movementsFile = "movements.jsonl"
	sequenceFile  = "sequence.jsonl"
)

// readJSONL reads a JSONL file and returns each non-empty, parseable line.
// A missing file yields no records and no error; malformed lines are
// skipped so one corrupt line cannot take the whole catalog hostage.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically replaces the file at path with one line per record.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// marshalRecords converts typed snapshot records to raw JSONL lines.
func marshalRecords[T any](recs []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(recs))
	for _, r := range recs {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot record: %w", err)
		}
		out = append(out, data)
	}
	return out, nil
}

// itemRecord is the JSONL shape of one catalog item.
type itemRecord struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Category  *string `json:"category"`
	UnitPrice float64 `json:"unit_price"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// movementRecord is the JSONL shape of one audit movement.
type movementRecord struct {
	MovementID string `json:"movement_id"`
	ItemID     int64  `json:"item_id"`
	Kind       string `json:"kind"`
	Delta      int64  `json:"delta"`
	Quantity   int64  `json:"quantity"`
	CreatedAt  string `json:"created_at"`
}

// sequenceRecord is the JSONL shape of the id sequence row.
type sequenceRecord struct {
	Name   string `json:"name"`
	LastID int64  `json:"last_id"`
}
