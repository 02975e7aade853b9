package download

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLedger_Claim(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "On Disk - Artist.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	ledger, err := NewLedger(dir)
	if err != nil {
		t.Fatal(err)
	}

	if got := ledger.Claim("On Disk - Artist.mp3"); got != ClaimOnDisk {
		t.Errorf("Claim(existing) = %v, want ClaimOnDisk", got)
	}
	if got := ledger.Claim("subdir"); got != ClaimAccepted {
		t.Errorf("Claim(directory name) = %v, directories are not downloads", got)
	}
	if got := ledger.Claim("Fresh - Artist.mp3"); got != ClaimAccepted {
		t.Errorf("first Claim(fresh) = %v, want ClaimAccepted", got)
	}
	if got := ledger.Claim("Fresh - Artist.mp3"); got != ClaimInFlight {
		t.Errorf("second Claim(fresh) = %v, want ClaimInFlight", got)
	}
}

func TestLedger_SnapshotIsStable(t *testing.T) {
	dir := t.TempDir()
	ledger, err := NewLedger(dir)
	if err != nil {
		t.Fatal(err)
	}

	// A file appearing after the snapshot is invisible; the claim still
	// goes to the first claimant.
	if err := os.WriteFile(filepath.Join(dir, "Late - Artist.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ledger.Claim("Late - Artist.mp3"); got != ClaimAccepted {
		t.Errorf("Claim(post-snapshot file) = %v, want ClaimAccepted", got)
	}
}

func TestLedger_ConcurrentClaims(t *testing.T) {
	ledger, err := NewLedger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	const claimants = 16
	results := make([]ClaimResult, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = ledger.Claim("Contested - Artist.mp3")
		}()
	}
	wg.Wait()

	accepted := 0
	for _, r := range results {
		if r == ClaimAccepted {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("%d claimants accepted, want exactly 1", accepted)
	}
}

func TestLedger_MissingDir(t *testing.T) {
	if _, err := NewLedger(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("NewLedger() on a missing directory should fail")
	}
}
