// Package booking persists appointment requests to an append-only JSON file.
//
// The ledger uses read-modify-write semantics: load the full list, append one
// record, write back. Writers from different processes can race; hardening
// that further is out of scope since the ledger is not the conversation
// system of record.
package booking

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/serenelab/wellspring/pkg/domain"
)

// Ledger stores bookings in a single JSON array on disk.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// New creates a ledger at the given path.
// If path is empty, it defaults to ".wellspring/bookings.json".
func New(path string) *Ledger {
	if path == "" {
		path = filepath.Join(".wellspring", "bookings.json")
	}
	return &Ledger{path: path}
}

// Append adds one booking to the ledger.
// A missing or unreadable ledger file starts a fresh list rather than
// failing, matching the degrade-on-read policy for persistence.
func (l *Ledger) Append(b domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.readAll()
	records = append(records, b)

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to ensure booking directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write booking ledger: %w", err)
	}
	return nil
}

// All returns every booking recorded so far, oldest first.
func (l *Ledger) All() []domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

func (l *Ledger) readAll() []domain.Booking {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return []domain.Booking{}
	}
	var records []domain.Booking
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt ledger: degrade to empty rather than fail the session.
		return []domain.Booking{}
	}
	return records
}
