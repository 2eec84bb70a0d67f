package dtnsim

import (
	"math/rand"
	"testing"
)

func TestDisseminationPolicyAdmit(t *testing.T) {
	subscribed := NewMessage("m1", 0, 10, PriorityNormal, 0)
	subscribed.SetProperty(PropSubID, 1)

	unsubscribed := NewMessage("m2", 0, 10, PriorityNormal, 0)
	unsubscribed.SetProperty(PropSubID, 2)

	plain := NewMessage("m3", 0, 10, PriorityNormal, 0)

	subs := map[int]bool{1: true}

	t.Run("a message with no subscription topic is always admitted", func(t *testing.T) {
		p := NewDisseminationPolicy(DisseminationStrict, subs, 0, nil)
		if !p.Admit(plain) {
			t.Fatal("a non-pub/sub message must bypass subscription policy entirely")
		}
	})

	t.Run("a matching subscription is always admitted regardless of mode", func(t *testing.T) {
		for _, mode := range []DisseminationMode{DisseminationStrict, DisseminationSemiPorous, DisseminationFlexible} {
			p := NewDisseminationPolicy(mode, subs, 0, nil)
			if !p.Admit(subscribed) {
				t.Fatalf("mode %v should admit a matching subscription", mode)
			}
		}
	})

	t.Run("strict mode rejects a non-matching subscription", func(t *testing.T) {
		p := NewDisseminationPolicy(DisseminationStrict, subs, 0, nil)
		if p.Admit(unsubscribed) {
			t.Fatal("strict mode should reject a non-matching subscription")
		}
	})

	t.Run("flexible mode admits a non-matching subscription", func(t *testing.T) {
		p := NewDisseminationPolicy(DisseminationFlexible, subs, 0, nil)
		if !p.Admit(unsubscribed) {
			t.Fatal("flexible mode should admit every message")
		}
	})

	t.Run("semi-porous mode admits probabilistically", func(t *testing.T) {
		always := NewDisseminationPolicy(DisseminationSemiPorous, subs, 1, rand.New(rand.NewSource(1)))
		if !always.Admit(unsubscribed) {
			t.Fatal("porousProbability=1 should always admit")
		}
		never := NewDisseminationPolicy(DisseminationSemiPorous, subs, 0, rand.New(rand.NewSource(1)))
		if never.Admit(unsubscribed) {
			t.Fatal("porousProbability=0 should never admit")
		}
	})
}

func TestNewDisseminationMode(t *testing.T) {
	testcases := []struct {
		name    string
		input   string
		want    DisseminationMode
		wantErr bool
	}{
		{"empty defaults to strict", "", DisseminationStrict, false},
		{"STRICT", "STRICT", DisseminationStrict, false},
		{"SEMI_POROUS", "SEMI_POROUS", DisseminationSemiPorous, false},
		{"FLEXIBLE", "FLEXIBLE", DisseminationFlexible, false},
		{"unknown", "bogus", 0, true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewDisseminationMode(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Fatalf("NewDisseminationMode(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
