package dtnsim

import (
	"testing"
)

func TestNewConnectivityOptimizer(t *testing.T) {
	t.Run("rejects a multiplier below 2", func(t *testing.T) {
		if _, err := NewConnectivityOptimizer(10, 1.5); err == nil {
			t.Fatal("expected an error for cellSizeMultiplier < 2")
		}
	})

	t.Run("rejects a non-positive transmit range", func(t *testing.T) {
		if _, err := NewConnectivityOptimizer(0, 2); err == nil {
			t.Fatal("expected an error for maxTransmitRange <= 0")
		}
	})

	t.Run("accepts a valid configuration", func(t *testing.T) {
		if _, err := NewConnectivityOptimizer(10, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestConnectivityOptimizerQuery(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}

	near := newTestHost(t, sc, im, optimizer, "near", Coord{X: 0, Y: 0}, 1<<20)
	adjacentCell := newTestHost(t, sc, im, optimizer, "adjacent", Coord{X: 25, Y: 0}, 1<<20)
	farAway := newTestHost(t, sc, im, optimizer, "far", Coord{X: 1000, Y: 1000}, 1<<20)

	got := optimizer.Query(near.Interfaces()[0])

	foundAdjacent, foundFar := false, false
	for _, ni := range got {
		if ni.HostAddress() == adjacentCell.Address() {
			foundAdjacent = true
		}
		if ni.HostAddress() == farAway.Address() {
			foundFar = true
		}
	}
	if !foundAdjacent {
		t.Error("Query did not return a neighbor one grid cell away")
	}
	if foundFar {
		t.Error("Query returned a neighbor far outside the 3x3 neighborhood")
	}
}

func TestConnectivityOptimizerRefreshMovesCells(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}

	host := newTestHost(t, sc, im, optimizer, "mobile", Coord{X: 0, Y: 0}, 1<<20)
	ni := host.Interfaces()[0]
	oldLoc := ni.Location()

	optimizer.Refresh(ni, oldLoc)
	if got := len(optimizer.cells[optimizer.keyFor(oldLoc)]); got != 1 {
		t.Fatalf("Refresh with an unchanged location should be a no-op; cell has %d entries", got)
	}

	// simulate the host moving far away without going through Move, to
	// exercise Refresh's cross-cell bookkeeping directly.
	host.location = Coord{X: 1000, Y: 1000}
	optimizer.Refresh(ni, oldLoc)

	if len(optimizer.cells[optimizer.keyFor(oldLoc)]) != 0 {
		t.Error("Refresh left a stale entry in the old cell")
	}
	if len(optimizer.cells[optimizer.keyFor(host.Location())]) != 1 {
		t.Error("Refresh did not register the interface in its new cell")
	}
}
