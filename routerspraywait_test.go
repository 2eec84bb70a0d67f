package dtnsim

import "testing"

// These exercise sprayAndWaitState's pure copy-splitting math directly,
// covering the binary/standard split and the prepareSend/copyPolicy
// hand-off that keeps the sender's own share correct across a send.

func TestSprayAndWaitBinarySplit(t *testing.T) {
	sw := &sprayAndWaitState{mode: SprayBinary, initialCopies: 7}
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	peer := &DTNHost{}

	sw.prepareSend(msg, peer)
	theirShare, ok := msg.Copies()
	if !ok || theirShare != 3 {
		t.Fatalf("receiver's share = %d, %v, want 3, true", theirShare, ok)
	}

	keepSending := sw.copyPolicy(msg, peer)
	if !keepSending {
		t.Fatal("sender should keep retransmitting: its remaining share is > 0")
	}
	mySshare, ok := msg.Copies()
	if !ok || mySshare != 4 {
		t.Fatalf("sender's share after copyPolicy = %d, %v, want 4, true", mySshare, ok)
	}
}

func TestSprayAndWaitStandardSplit(t *testing.T) {
	sw := &sprayAndWaitState{mode: SprayStandard, initialCopies: 5}
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	peer := &DTNHost{}

	sw.prepareSend(msg, peer)
	theirShare, _ := msg.Copies()
	if theirShare != 1 {
		t.Fatalf("receiver's share = %d, want 1", theirShare)
	}

	if !sw.copyPolicy(msg, peer) {
		t.Fatal("sender should keep retransmitting: 4 copies remain")
	}
	mySshare, _ := msg.Copies()
	if mySshare != 4 {
		t.Fatalf("sender's share after copyPolicy = %d, want 4", mySshare)
	}
}

// TestSprayAndWaitEntersWaitPhase is a regression test: a prior version of
// prepareSend wrote the sender's post-send share onto msg via a deferred
// closure that ran after copyPolicy had already read it, corrupting the
// handoff for the forwarding host's own retained copy. This pins the
// sequential prepareSend-then-copyPolicy contract.
func TestSprayAndWaitEntersWaitPhase(t *testing.T) {
	sw := &sprayAndWaitState{mode: SprayBinary, initialCopies: 2}
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	peer := &DTNHost{}

	sw.prepareSend(msg, peer)
	theirShare, _ := msg.Copies()
	if theirShare != 1 {
		t.Fatalf("receiver's share = %d, want 1", theirShare)
	}
	if !sw.copyPolicy(msg, peer) {
		t.Fatal("sender should still forward: its own share is 1, not exhausted")
	}
	mySshare, _ := msg.Copies()
	if mySshare != 1 {
		t.Fatalf("sender's share = %d, want 1 (now in wait phase)", mySshare)
	}

	// a second forward attempt from the now-single-copy sender must not
	// hand anything further away: offerPolicy gates this at the router
	// level, but prepareSend/copyPolicy must also behave correctly if
	// ever invoked in this state.
	if sw.offerPolicy(msg, peer) {
		t.Fatal("offerPolicy should refuse further forwarding once down to a single copy")
	}
}

func TestSprayAndWaitOfferPolicyGatesOnSingleCopy(t *testing.T) {
	sw := &sprayAndWaitState{mode: SprayBinary, initialCopies: 4}
	msg := NewMessage("m1", 0, 10, PriorityNormal, 0)
	peer := &DTNHost{}

	if !sw.offerPolicy(msg, peer) {
		t.Fatal("offerPolicy should allow forwarding while more than one copy remains")
	}

	msg.SetProperty(PropCopies, 1)
	if sw.offerPolicy(msg, peer) {
		t.Fatal("offerPolicy should refuse forwarding once only one copy remains")
	}
}

func TestNewSprayAndWaitRouterClampsInitialCopies(t *testing.T) {
	sc := NewSimContext(0, 1)
	cache, err := NewMessageCacheManager(1000, FIFOPrioritization{}, UnchangedForwardingOrder{}, sc.NewRand(0), nullLogger{})
	if err != nil {
		t.Fatalf("NewMessageCacheManager: %v", err)
	}
	host := NewDTNHost(sc, "h", nil, Coord{}, nil, nullLogger{})
	r := NewSprayAndWaitRouter(host, sc, cache, SprayBinary, 0, 0, nullLogger{})
	host.SetRouter(r)

	msg := NewMessage("m1", host.Address(), 10, PriorityNormal, 0)
	if r.CreateNewMessage(msg) != RcvOK {
		t.Fatal("CreateNewMessage should admit a fresh message")
	}
	if r.offerPolicy(msg, host) {
		t.Fatal("a budget clamped to one copy should start the message in the wait phase")
	}
	if copies, ok := msg.Copies(); !ok || copies != 1 {
		t.Fatalf("Copies() = %d, %v, want 1, true (initialCopies 0 clamped up to 1)", copies, ok)
	}
}
