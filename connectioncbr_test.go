package dtnsim

import "testing"

func TestCBRConnectionTransferLifecycle(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}

	sender := newTestHost(t, sc, im, optimizer, "sender", Coord{}, 1<<20)
	receiver := newTestHost(t, sc, im, optimizer, "receiver", Coord{}, 1<<20)

	con := NewCBRConnection(sender, receiver, sender.Interfaces()[0], receiver.Interfaces()[0], 100, im, nullLogger{})

	msg := NewMessage("m1", sender.Address(), 1000, PriorityNormal, 0)
	if !con.StartTransfer(sender.Address(), msg) {
		t.Fatal("StartTransfer should succeed against an empty receiver cache")
	}
	if con.SenderInterface() != sender.Interfaces()[0] {
		t.Fatal("SenderInterface should resolve to the interface matching fromAddr")
	}
	if con.IsMessageTransferred() {
		t.Fatal("a 1000-byte transfer at 100 bytes/s should not be done at t=0")
	}

	sc.Clock.Set(5)
	con.Update(sc.Clock.Now())
	if got := con.BytesTransferredSoFar(); got != 500 {
		t.Fatalf("BytesTransferredSoFar() at t=5 = %d, want 500", got)
	}
	if con.IsMessageTransferred() {
		t.Fatal("transfer should still be incomplete halfway through")
	}

	sc.Clock.Set(10)
	con.Update(sc.Clock.Now())
	if !con.IsMessageTransferred() {
		t.Fatal("transfer should be complete once elapsed*speed >= size")
	}
	if got := con.GetRemainingByteCount(); got != 0 {
		t.Fatalf("GetRemainingByteCount() at completion = %d, want 0", got)
	}

	con.FinalizeTransfer()
	if con.Underway() != nil {
		t.Fatal("FinalizeTransfer should clear the underway transfer")
	}
	if got := con.TotalGoodput(); got != 1000 {
		t.Fatalf("TotalGoodput() after a clean finalize = %d, want 1000", got)
	}
	if !receiver.Router().Cache().Contains("m1") {
		t.Fatal("receiver's router should have admitted the transferred message into its cache")
	}
}

func TestCBRConnectionAbortTransfer(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}
	sender := newTestHost(t, sc, im, optimizer, "sender", Coord{}, 1<<20)
	receiver := newTestHost(t, sc, im, optimizer, "receiver", Coord{}, 1<<20)

	con := NewCBRConnection(sender, receiver, sender.Interfaces()[0], receiver.Interfaces()[0], 100, im, nullLogger{})
	msg := NewMessage("m1", sender.Address(), 1000, PriorityNormal, 0)
	if !con.StartTransfer(sender.Address(), msg) {
		t.Fatal("StartTransfer should succeed")
	}

	sc.Clock.Set(2)
	con.Update(sc.Clock.Now())
	con.AbortTransfer()

	if con.Underway() != nil {
		t.Fatal("AbortTransfer should clear the underway transfer")
	}
	if got := con.TotalThroughput(); got != 200 {
		t.Fatalf("TotalThroughput() after abort = %d, want 200 (partial bytes only)", got)
	}
	if got := con.TotalGoodput(); got != 0 {
		t.Fatalf("TotalGoodput() after abort = %d, want 0", got)
	}
}

func TestCBRConnectionInterferedTransferDoesNotDeliver(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}
	senderA := newTestHost(t, sc, im, optimizer, "senderA", Coord{}, 1<<20)
	senderB := newTestHost(t, sc, im, optimizer, "senderB", Coord{}, 1<<20)
	receiver := newTestHost(t, sc, im, optimizer, "receiver", Coord{}, 1<<20)

	conA := NewCBRConnection(senderA, receiver, senderA.Interfaces()[0], receiver.Interfaces()[0], 100, im, nullLogger{})
	conB := NewCBRConnection(senderB, receiver, senderB.Interfaces()[0], receiver.Interfaces()[0], 100, im, nullLogger{})

	msgA := NewMessage("mA", senderA.Address(), 100, PriorityNormal, 0)
	msgB := NewMessage("mB", senderB.Address(), 100, PriorityNormal, 0)

	if !conA.StartTransfer(senderA.Address(), msgA) {
		t.Fatal("first StartTransfer on the receiving interface should succeed")
	}
	if !conB.StartTransfer(senderB.Address(), msgB) {
		t.Fatal("second StartTransfer should still be admitted at the router level")
	}

	sc.Clock.Set(1)
	conA.Update(sc.Clock.Now())
	conB.Update(sc.Clock.Now())

	if !conA.IsMessageTransferred() || !conB.IsMessageTransferred() {
		t.Fatal("both byte clocks should report complete at t=1")
	}

	conA.FinalizeTransfer()
	conB.FinalizeTransfer()

	if !receiver.Router().Cache().Contains("mA") {
		t.Fatal("the first reception (no collision in progress when it began) should be retrievable")
	}
	if receiver.Router().Cache().Contains("mB") {
		t.Fatal("the second (colliding) reception should not be retrievable")
	}
}
