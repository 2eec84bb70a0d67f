package dtnsim

//
// Forwarding-order strategies: the order in which a router offers a
// host's cached messages to a newly-connected peer.
//
// Grounded the same way as prioritization.go: a closed-set strategy
// switch mirroring the teacher's DPIRule dispatch family.
//

import "math/rand"

// ForwardingOrderStrategy reorders the candidate messages a router is
// about to offer to a peer. Unlike PrioritizationStrategy (which governs
// eviction), this governs transmission order and may be randomized.
type ForwardingOrderStrategy interface {
	Order(msgs []*Message, rng *rand.Rand) []*Message
}

// UnchangedForwardingOrder offers messages in whatever order the cache
// already holds them (its own prioritization order).
type UnchangedForwardingOrder struct{}

var _ ForwardingOrderStrategy = UnchangedForwardingOrder{}

func (UnchangedForwardingOrder) Order(msgs []*Message, rng *rand.Rand) []*Message {
	return msgs
}

// ExponentiallyDecayingForwardingOrder samples messages without
// replacement using geometrically decaying weights, per SPEC_FULL.md
// §4.8: the first-drawn message is the most likely to be the cache's
// highest-priority one, but every message retains a nonzero chance of
// being drawn first, decaying by a constant factor per rank.
//
// DecayFactor must be in (0, 1); smaller values concentrate probability
// mass more sharply on the front of the input ordering.
type ExponentiallyDecayingForwardingOrder struct {
	DecayFactor float64
}

var _ ForwardingOrderStrategy = ExponentiallyDecayingForwardingOrder{}

func (s ExponentiallyDecayingForwardingOrder) Order(msgs []*Message, rng *rand.Rand) []*Message {
	decay := s.DecayFactor
	if decay <= 0 || decay >= 1 {
		decay = 0.5
	}

	pool := append([]*Message(nil), msgs...)
	out := make([]*Message, 0, len(pool))

	for len(pool) > 0 {
		weights := make([]float64, len(pool))
		var total float64
		for i := range pool {
			weights[i] = pow(decay, i)
			total += weights[i]
		}
		pick := rng.Float64() * total
		idx := len(pool) - 1
		var acc float64
		for i, w := range weights {
			acc += w
			if pick <= acc {
				idx = i
				break
			}
		}
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

// pow is a tiny integer-exponent power helper so this file doesn't need to
// import math just for math.Pow on a non-negative integer exponent.
func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// NewForwardingOrderStrategy resolves a named strategy, as read by
// BuildScenario from the "MessageCache.messageForwardingOrderStrategy" key.
func NewForwardingOrderStrategy(name string, decayFactor float64) (ForwardingOrderStrategy, error) {
	switch name {
	case "Unchanged", "":
		return UnchangedForwardingOrder{}, nil
	case "ExponentiallyDecaying":
		return ExponentiallyDecayingForwardingOrder{DecayFactor: decayFactor}, nil
	default:
		return nil, ErrUnknownForwardingOrderStrategy
	}
}
