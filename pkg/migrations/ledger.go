package migrations

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LedgerVersion is the schema version written to new ledgers
const LedgerVersion = "0.0.1"

// LedgerEntry records one completed migration step
type LedgerEntry struct {
	Number      int       `yaml:"number"`
	Migration   string    `yaml:"migration"`
	Contract    string    `yaml:"contract"`
	Address     string    `yaml:"address"`
	TxHash      string    `yaml:"tx_hash"`
	BlockNumber uint64    `yaml:"block_number"`
	CompletedAt time.Time `yaml:"completed_at"`
}

// Ledger tracks which migration steps have completed on the configured network
type Ledger struct {
	Version                string        `yaml:"version"`
	LastCompletedMigration int           `yaml:"last_completed_migration"`
	Entries                []LedgerEntry `yaml:"entries"`

	path string
}

// LoadLedger reads the ledger at path. A missing file is an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Ledger{Version: LedgerVersion, path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var l Ledger
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	l.path = path
	return &l, nil
}

// Completed returns the entry for step number, if recorded
func (l *Ledger) Completed(number int) (LedgerEntry, bool) {
	for _, e := range l.Entries {
		if e.Number == number {
			return e, true
		}
	}
	return LedgerEntry{}, false
}

// Record adds or replaces the entry for its step
func (l *Ledger) Record(entry LedgerEntry) {
	l.Forget(entry.Number)
	l.Entries = append(l.Entries, entry)
	if entry.Number > l.LastCompletedMigration {
		l.LastCompletedMigration = entry.Number
	}
}

// Forget drops the entry for step number
func (l *Ledger) Forget(number int) {
	kept := l.Entries[:0]
	last := 0
	for _, e := range l.Entries {
		if e.Number == number {
			continue
		}
		kept = append(kept, e)
		last = max(last, e.Number)
	}
	l.Entries = kept
	l.LastCompletedMigration = last
}

// Save writes the ledger back to the path it was loaded from
func (l *Ledger) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return os.WriteFile(l.path, buf.Bytes(), 0o644)
}
