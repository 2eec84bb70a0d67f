package dtnsim

import (
	"errors"
	"testing"
)

func TestSettingsTypedGetters(t *testing.T) {
	s, err := NewSettings(map[string]any{
		"Scenario.endTime":    3600.0,
		"Scenario.nrofGroups": 2,
		"Scenario.name":       "basic",
		"Scenario.quiet":      true,
	})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	if got, err := s.Float(ScenarioKey("endTime")); err != nil || got != 3600.0 {
		t.Fatalf("Float(endTime) = %v, %v, want 3600.0, nil", got, err)
	}
	if got, err := s.Int(ScenarioKey("nrofGroups")); err != nil || got != 2 {
		t.Fatalf("Int(nrofGroups) = %v, %v, want 2, nil", got, err)
	}
	if got, err := s.String(ScenarioKey("name")); err != nil || got != "basic" {
		t.Fatalf("String(name) = %v, %v, want basic, nil", got, err)
	}
	if got := s.BoolOr(ScenarioKey("quiet"), false); !got {
		t.Fatal("BoolOr(quiet) should report true")
	}
}

func TestSettingsMissingKeyErrors(t *testing.T) {
	s, err := NewSettings(map[string]any{})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	if _, err := s.Float("Scenario.endTime"); !errors.Is(err, ErrMissingSetting) {
		t.Fatalf("Float on a missing key: err = %v, want ErrMissingSetting", err)
	}
	if _, err := s.Int("Scenario.nrofGroups"); !errors.Is(err, ErrMissingSetting) {
		t.Fatalf("Int on a missing key: err = %v, want ErrMissingSetting", err)
	}
	if _, err := s.String("Scenario.name"); !errors.Is(err, ErrMissingSetting) {
		t.Fatalf("String on a missing key: err = %v, want ErrMissingSetting", err)
	}

	if got := s.FloatOr("Scenario.endTime", 42); got != 42 {
		t.Fatalf("FloatOr on a missing key = %v, want 42", got)
	}
	if got := s.IntOr("Scenario.nrofGroups", 7); got != 7 {
		t.Fatalf("IntOr on a missing key = %v, want 7", got)
	}
	if got := s.StringOr("Scenario.name", "fallback"); got != "fallback" {
		t.Fatalf("StringOr on a missing key = %q, want fallback", got)
	}
}

func TestSettingsMerge(t *testing.T) {
	s, err := NewSettings(map[string]any{"Scenario.endTime": 100.0})
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if err := s.Merge(map[string]any{"Scenario.endTime": 200.0, "Scenario.warmup": 10.0}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := s.FloatOr("Scenario.endTime", 0); got != 200.0 {
		t.Fatalf("Merge should override an existing key: got %v, want 200.0", got)
	}
	if got := s.FloatOr("Scenario.warmup", 0); got != 10.0 {
		t.Fatalf("Merge should add a new key: got %v, want 10.0", got)
	}
}

func TestNamespaceHelpers(t *testing.T) {
	if got, want := GroupKey(2, "bufferSize"), "Group.2.bufferSize"; got != want {
		t.Fatalf("GroupKey() = %q, want %q", got, want)
	}
	if got, want := InterfaceKey("bt", "transmitRange"), "Interface.bt.transmitRange"; got != want {
		t.Fatalf("InterfaceKey() = %q, want %q", got, want)
	}
	if got, want := ScenarioKey("endTime"), "Scenario.endTime"; got != want {
		t.Fatalf("ScenarioKey() = %q, want %q", got, want)
	}
}
