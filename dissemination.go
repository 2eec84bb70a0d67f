package dtnsim

//
// Dissemination modes: how a subscription-aware router decides whether a
// message not addressed to this host should still be cached and
// forwarded, based on the host's topic subscriptions.
//
// Grounded on dpidrop.go/dpithrottle.go's DPIRule-shaped predicate
// structs (Filter(direction, packet) (*Policy, bool)), generalized from
// per-packet accept/drop policy to per-message subscription policy
// (SPEC_FULL.md §4.9).
//

import "math/rand"

// DisseminationMode is a subscription-aware router's policy for whether
// to accept and re-forward a message whose subscription topic this host
// is not itself subscribed to.
type DisseminationMode int

const (
	// DisseminationStrict accepts only messages matching a subscription
	// this host holds.
	DisseminationStrict DisseminationMode = iota
	// DisseminationSemiPorous accepts non-matching messages with a
	// configured probability, letting some transit traffic pass through
	// non-subscribers to improve delivery at the cost of extra storage.
	DisseminationSemiPorous
	// DisseminationFlexible accepts every message regardless of
	// subscription, i.e. behaves like a plain (non-subscription-aware)
	// router.
	DisseminationFlexible
)

// DisseminationPolicy decides whether a message should be admitted given
// this host's subscription set.
type DisseminationPolicy struct {
	Mode DisseminationMode

	// Subscriptions is the set of subscription IDs this host holds.
	Subscriptions map[int]bool

	// PorousProbability is consulted only in DisseminationSemiPorous
	// mode: the chance of admitting a non-matching message.
	PorousProbability float64

	rng *rand.Rand
}

// NewDisseminationPolicy constructs a policy. rng must be non-nil when
// Mode is DisseminationSemiPorous.
func NewDisseminationPolicy(mode DisseminationMode, subscriptions map[int]bool, porousProbability float64, rng *rand.Rand) *DisseminationPolicy {
	return &DisseminationPolicy{
		Mode:              mode,
		Subscriptions:     subscriptions,
		PorousProbability: porousProbability,
		rng:               rng,
	}
}

// Admit reports whether msg should be admitted into this host's cache,
// per SPEC_FULL.md §4.9's three dissemination modes.
func (p *DisseminationPolicy) Admit(msg *Message) bool {
	subID, hasSub := msg.SubID()
	if !hasSub {
		// not a publish/subscribe message: subscription policy doesn't apply
		return true
	}
	if p.Subscriptions[subID] {
		return true
	}
	switch p.Mode {
	case DisseminationFlexible:
		return true
	case DisseminationSemiPorous:
		return p.rng != nil && p.rng.Float64() < p.PorousProbability
	default: // DisseminationStrict
		return false
	}
}

// NewDisseminationMode resolves a named mode, as read by BuildScenario
// from the "subDisMode" key.
func NewDisseminationMode(name string) (DisseminationMode, error) {
	switch name {
	case "STRICT", "":
		return DisseminationStrict, nil
	case "SEMI_POROUS":
		return DisseminationSemiPorous, nil
	case "FLEXIBLE":
		return DisseminationFlexible, nil
	default:
		return 0, ErrUnknownDisseminationMode
	}
}
