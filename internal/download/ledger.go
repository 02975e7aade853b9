package download

import (
	"fmt"
	"os"
	"sync"
)

// ClaimResult says how the ledger ruled on a destination claim.
type ClaimResult int

const (
	// ClaimAccepted: the caller owns the destination and should fetch.
	ClaimAccepted ClaimResult = iota

	// ClaimOnDisk: the destination existed before the run started.
	ClaimOnDisk

	// ClaimInFlight: another item in this run claimed the destination first.
	ClaimInFlight
)

// Ledger arbitrates destination file names for one run.
//
// The output directory is snapshotted once at construction; files that
// appear in the directory afterwards are invisible to the ledger, so the
// skip decision for a given name is stable for the whole run. Claims are
// never released: one attempt per destination per run, even if the
// attempt fails.
type Ledger struct {
	mu       sync.Mutex
	existing map[string]struct{}
	claimed  map[string]struct{}
}

// NewLedger snapshots dir and returns a ledger over its current contents.
//
// Only the file names are recorded; the comparison is exact, matching the
// deterministic naming scheme used for destinations.
func NewLedger(dir string) (*Ledger, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	existing := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		existing[e.Name()] = struct{}{}
	}

	return &Ledger{
		existing: existing,
		claimed:  make(map[string]struct{}),
	}, nil
}

// Claim rules on fileName and, when accepted, records the claim so every
// later claim of the same name reports ClaimInFlight.
func (l *Ledger) Claim(fileName string) ClaimResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.existing[fileName]; ok {
		return ClaimOnDisk
	}
	if _, ok := l.claimed[fileName]; ok {
		return ClaimInFlight
	}
	l.claimed[fileName] = struct{}{}
	return ClaimAccepted
}
