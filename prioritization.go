package dtnsim

//
// Prioritization strategies: the order in which MessageCacheManager offers
// messages for eviction/forwarding consideration.
//
// Grounded on the teacher's DPIRule interface (dpidrop.go/dpithrottle.go):
// a small interface with one dispatch method, several concrete structs
// implementing it, selected by a closed set rather than open plugin
// registration. SPEC_FULL.md §4.8/§9 calls for exactly this shape: a
// tagged union of strategies resolved by a factory/switch.
//

import "sort"

// PrioritizationStrategy orders a cache's messages, most-evictable-first
// (Order returns the messages sorted so the cache can evict from the
// front when it needs room).
type PrioritizationStrategy interface {
	Order(msgs []*Message) []*Message
}

// FIFOPrioritization orders strictly by creation time, oldest first — the
// baseline strategy with no notion of priority.
type FIFOPrioritization struct{}

var _ PrioritizationStrategy = FIFOPrioritization{}

func (FIFOPrioritization) Order(msgs []*Message) []*Message {
	out := append([]*Message(nil), msgs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreationTime < out[j].CreationTime
	})
	return out
}

// PrioritizedFIFOPrioritization orders by ascending Priority first (low
// before normal before high), breaking ties by creation time — so within
// a priority tier the oldest message is still evicted first.
type PrioritizedFIFOPrioritization struct{}

var _ PrioritizationStrategy = PrioritizedFIFOPrioritization{}

func (PrioritizedFIFOPrioritization) Order(msgs []*Message) []*Message {
	out := append([]*Message(nil), msgs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Prio != out[j].Prio {
			return out[i].Prio < out[j].Prio
		}
		return out[i].CreationTime < out[j].CreationTime
	})
	return out
}

// PrioritizedLeastForwardedFirstFIFOPrioritization orders by ascending
// Priority, then descending forward count, then creation time — messages
// this host has forwarded fewest times are considered more valuable and
// sorted toward the back (less evictable), per SPEC_FULL.md §4.8.
type PrioritizedLeastForwardedFirstFIFOPrioritization struct{}

var _ PrioritizationStrategy = PrioritizedLeastForwardedFirstFIFOPrioritization{}

func (PrioritizedLeastForwardedFirstFIFOPrioritization) Order(msgs []*Message) []*Message {
	out := append([]*Message(nil), msgs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Prio != out[j].Prio {
			return out[i].Prio < out[j].Prio
		}
		if out[i].forwardCount != out[j].forwardCount {
			return out[i].forwardCount > out[j].forwardCount
		}
		return out[i].CreationTime < out[j].CreationTime
	})
	return out
}

// NewPrioritizationStrategy resolves a named strategy, as read by
// BuildScenario from the "MessageCache.cachingPrioritizationStrategy" key.
func NewPrioritizationStrategy(name string) (PrioritizationStrategy, error) {
	switch name {
	case "FIFO", "":
		return FIFOPrioritization{}, nil
	case "PrioritizedFIFO":
		return PrioritizedFIFOPrioritization{}, nil
	case "PrioritizedLeastForwardedFirstFIFO":
		return PrioritizedLeastForwardedFirstFIFOPrioritization{}, nil
	default:
		return nil, ErrUnknownPrioritizationStrategy
	}
}
