package dtnsim

import (
	"testing"
)

func TestMessageReplicate(t *testing.T) {
	t.Run("replica is a distinct object with equal fields", func(t *testing.T) {
		orig := NewMessage("m1", 1, 128, PriorityHigh, 10)
		orig.SetTo(2)
		orig.SetProperty(PropSubID, 7)
		orig.AddNodeOnPath(3)

		clone := orig.Replicate()

		if clone == orig {
			t.Fatal("Replicate returned the same pointer")
		}
		if clone.ID != orig.ID || clone.To != orig.To || clone.ToValid != orig.ToValid {
			t.Fatalf("replica diverged on identity fields: %+v vs %+v", clone, orig)
		}
		if sub, ok := clone.SubID(); !ok || sub != 7 {
			t.Fatalf("replica lost subID property: %v, %v", sub, ok)
		}

		// mutating the clone's property bag must not affect the original
		clone.SetProperty(PropSubID, 99)
		if sub, _ := orig.SubID(); sub != 7 {
			t.Fatal("mutating replica's properties leaked back into the original")
		}
	})
}

func TestMessageHopCount(t *testing.T) {
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	if got := msg.HopCount(); got != 0 {
		t.Fatalf("fresh message HopCount() = %d, want 0", got)
	}
	msg.AddNodeOnPath(1)
	msg.AddNodeOnPath(2)
	if got := msg.HopCount(); got != 2 {
		t.Fatalf("HopCount() after two hops = %d, want 2", got)
	}
}

func TestMessageExpired(t *testing.T) {
	testcases := []struct {
		name       string
		ttlMinutes float64
		created    float64
		now        float64
		want       bool
	}{
		{"infinite TTL never expires", InfiniteTTL, 0, 1e9, false},
		{"before deadline", 1, 0, 30, false},
		{"at deadline", 1, 0, 60, true},
		{"after deadline", 1, 0, 120, true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewMessage("m1", 0, 10, PriorityNormal, tc.created)
			msg.TTLMinutes = tc.ttlMinutes
			if got := msg.Expired(tc.now); got != tc.want {
				t.Fatalf("Expired(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestMessageCopiesProperty(t *testing.T) {
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	if _, ok := msg.Copies(); ok {
		t.Fatal("Copies() should be unset on a fresh message")
	}
	msg.SetProperty(PropCopies, 6)
	got, ok := msg.Copies()
	if !ok || got != 6 {
		t.Fatalf("Copies() = (%d, %v), want (6, true)", got, ok)
	}
}
