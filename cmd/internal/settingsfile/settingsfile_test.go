package settingsfile

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# a comment
Scenario.endTime = 3600
Scenario.name = basic

Group.0.router=Epidemic
Scenario.quiet = true
`
	got, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]any{
		"Scenario.endTime": 3600.0,
		"Scenario.name":    "basic",
		"Group.0.router":   "Epidemic",
		"Scenario.quiet":   true,
	}
	if len(got) != len(want) {
		t.Fatalf("parse() returned %d keys, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("parse()[%q] = %#v, want %#v", k, got[k], v)
		}
	}
}

func TestParseRejectsMissingEquals(t *testing.T) {
	if _, err := parse(strings.NewReader("not-a-key-value-line")); err == nil {
		t.Fatal("expected an error for a line with no '='")
	}
}

func TestParseRejectsEmptyKey(t *testing.T) {
	if _, err := parse(strings.NewReader(" = value")); err == nil {
		t.Fatal("expected an error for a line with an empty key")
	}
}

func TestLoadKeyValueFileMissingFile(t *testing.T) {
	if _, err := LoadKeyValueFile("/nonexistent/path/to/settings.txt"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
