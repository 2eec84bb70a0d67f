package dtnsim

import (
	"context"
	"testing"
)

func TestBuildScenarioDeliversAMessage(t *testing.T) {
	cfg, err := NewSettings(map[string]any{
		"Scenario.endTime":        100.0,
		"Scenario.updateInterval": 1.0,
		"Scenario.nrofHostGroups": 1,
		"Group.0.nrofHosts":       2,
		"Group.0.router":         "Epidemic",
		"Group.0.interface1":     "bt",
		"Interface.bt.transmitRange": 10.0,
		"Interface.bt.transmitSpeed": 1_000_000.0,
	})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	sc := NewSimContext(0, 1)
	world, stats, err := BuildScenario(cfg, sc, nullLogger{})
	if err != nil {
		t.Fatalf("BuildScenario: %v", err)
	}

	sender := world.hosts[0]
	receiver := world.hosts[1]

	msg := NewMessage("m1", sender.Address(), 10, PriorityNormal, 0)
	msg.SetTo(receiver.Address())
	if code := sender.Router().CreateNewMessage(msg); code != RcvOK {
		t.Fatalf("CreateNewMessage = %v, want RcvOK", code)
	}

	if err := world.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snap := stats.Snapshot()
	if snap.Delivered != 1 {
		t.Fatalf("Delivered = %d, want 1 (snapshot: %+v)", snap.Delivered, snap)
	}
}

func TestBuildScenarioRejectsUnknownRouterKind(t *testing.T) {
	cfg, err := NewSettings(map[string]any{
		"Scenario.nrofHostGroups": 1,
		"Group.0.nrofHosts":       1,
		"Group.0.router":         "Bogus",
	})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	sc := NewSimContext(0, 1)
	if _, _, err := BuildScenario(cfg, sc, nullLogger{}); err == nil {
		t.Fatal("expected an error for an unknown router kind")
	}
}

func TestBuildScenarioSkipsEmptyGroups(t *testing.T) {
	cfg, err := NewSettings(map[string]any{
		"Scenario.nrofHostGroups": 1,
		"Group.0.nrofHosts":       0,
	})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	sc := NewSimContext(0, 1)
	world, _, err := BuildScenario(cfg, sc, nullLogger{})
	if err != nil {
		t.Fatalf("BuildScenario: %v", err)
	}
	if len(world.hosts) != 0 {
		t.Fatalf("expected no hosts built for a zero-size group, got %d", len(world.hosts))
	}
}
