package dtnsim

import (
	"context"
	"math/rand"
	"testing"
)

func TestMessageEventGeneratorFireCreatesAMessage(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}
	a := newTestHost(t, sc, im, optimizer, "a", Coord{}, 1<<20)
	b := newTestHost(t, sc, im, optimizer, "b", Coord{}, 1<<20)

	gen := NewMessageEventGenerator([]*DTNHost{a, b}, 10, 20, 5, InfiniteTTL, true, "ev", rand.New(rand.NewSource(1)))
	gen.fire(0)

	all := a.Router().Cache().All()
	if len(all) != 1 {
		t.Fatalf("expected one freshly created message in the sender's cache, got %d", len(all))
	}
	msg := all[0]
	if msg.Size < 10 || msg.Size >= 20 {
		t.Fatalf("message size %d out of range [10, 20)", msg.Size)
	}
	if !msg.ToValid {
		t.Fatal("unicast generator should set a destination")
	}
	if msg.To == a.Address() {
		t.Fatal("unicast destination should never be the sender itself")
	}
}

func TestMessageEventGeneratorScheduleRespectsEndTime(t *testing.T) {
	sc := NewSimContext(0, 1)
	im := NewInterferenceModel()
	optimizer, err := NewConnectivityOptimizer(10, 2)
	if err != nil {
		t.Fatalf("NewConnectivityOptimizer: %v", err)
	}
	a := newTestHost(t, sc, im, optimizer, "a", Coord{}, 1<<20)

	world := NewWorld(sc, 1, 10, 0, defaultConnectionFactory, nullLogger{})
	world.AddHost(a)

	gen := NewMessageEventGenerator([]*DTNHost{a}, 10, 10, 2, InfiniteTTL, false, "ev", rand.New(rand.NewSource(1)))
	gen.Schedule(world, 0, 10)

	if err := world.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// firings at t=0,2,4,6,8 (the one computed for t=10 is excluded by
	// Schedule's `next < endTime` guard) -- five messages created.
	if got := len(a.Router().Cache().All()); got != 5 {
		t.Fatalf("created %d messages, want 5", got)
	}
}

func TestMessageEventGeneratorNoHostsIsANoOp(t *testing.T) {
	sc := NewSimContext(0, 1)
	world := NewWorld(sc, 1, 10, 0, defaultConnectionFactory, nullLogger{})
	gen := NewMessageEventGenerator(nil, 10, 10, 1, InfiniteTTL, false, "ev", rand.New(rand.NewSource(1)))
	gen.Schedule(world, 0, 10)
	if err := world.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
