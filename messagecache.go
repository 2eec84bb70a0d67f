package dtnsim

//
// MessageCacheManager: per-host store of not-yet-delivered messages,
// bounded by a byte budget and governed by a prioritization strategy for
// eviction and a forwarding-order strategy for offer order.
//
// Grounded on dpiengine.go's mutex-guarded registry shape, generalized
// from per-flow DPI records to per-message cache entries (SPEC_FULL.md
// §4.8).
//

import (
	"math/rand"
)

// MessageCacheManager holds a host's buffered messages.
type MessageCacheManager struct {
	capacity int64
	used     int64

	messages map[string]*Message

	prioritization PrioritizationStrategy
	forwardingOrder ForwardingOrderStrategy
	rng            *rand.Rand

	logger Logger
}

// NewMessageCacheManager constructs a cache with the given byte capacity.
// capacity must be positive; SPEC_FULL.md §3's MessageCacheManager
// invariant forbids a zero-or-negative-capacity cache since it could never
// admit any message.
func NewMessageCacheManager(capacity int64, prioritization PrioritizationStrategy, forwardingOrder ForwardingOrderStrategy, rng *rand.Rand, logger Logger) (*MessageCacheManager, error) {
	if capacity <= 0 {
		return nil, ErrBufferTooSmall
	}
	return &MessageCacheManager{
		capacity:        capacity,
		messages:        make(map[string]*Message),
		prioritization:  prioritization,
		forwardingOrder: forwardingOrder,
		rng:             rng,
		logger:          logger,
	}, nil
}

// Contains reports whether id is already cached.
func (m *MessageCacheManager) Contains(id string) bool {
	_, ok := m.messages[id]
	return ok
}

// Get returns the cached message, or nil.
func (m *MessageCacheManager) Get(id string) *Message {
	return m.messages[id]
}

// UsedBytes returns the cache's current occupancy.
func (m *MessageCacheManager) UsedBytes() int64 { return m.used }

// Capacity returns the cache's byte budget.
func (m *MessageCacheManager) Capacity() int64 { return m.capacity }

// FreeBytes returns the remaining byte budget.
func (m *MessageCacheManager) FreeBytes() int64 { return m.capacity - m.used }

// All returns every cached message, ordered per the cache's prioritization
// strategy (most-evictable first).
func (m *MessageCacheManager) All() []*Message {
	msgs := make([]*Message, 0, len(m.messages))
	for _, msg := range m.messages {
		msgs = append(msgs, msg)
	}
	return m.prioritization.Order(msgs)
}

// ForOffer returns every cached message in forwarding-offer order — the
// order a router should try offering them to a newly connected peer in.
func (m *MessageCacheManager) ForOffer() []*Message {
	return m.forwardingOrder.Order(m.All(), m.rng)
}

// Add inserts msg, assuming the caller has already made room (see
// MakeRoomFor); returns false if msg is already present.
//
// Before storing msg, its forward count is raised to the minimum forward
// count currently held in the buffer (SPEC_FULL.md §4.8's fairness
// floor): the count is only ever raised here, never lowered, and
// PrioritizedLeastForwardedFirstFIFOPrioritization can't be gamed by
// messages that look "least forwarded" purely because they just arrived.
func (m *MessageCacheManager) Add(msg *Message) bool {
	if m.Contains(msg.ID) {
		return false
	}
	if floor, ok := m.minForwardCount(); ok && floor > msg.forwardCount {
		msg.forwardCount = floor
	}
	m.messages[msg.ID] = msg
	m.used += msg.Size
	return true
}

// minForwardCount returns the lowest forward count among cached messages,
// and false if the cache is empty.
func (m *MessageCacheManager) minForwardCount() (int, bool) {
	first := true
	var floor int
	for _, other := range m.messages {
		if first || other.forwardCount < floor {
			floor = other.forwardCount
			first = false
		}
	}
	return floor, !first
}

// Remove deletes id if present, returning the removed message (or nil).
func (m *MessageCacheManager) Remove(id string) *Message {
	msg, ok := m.messages[id]
	if !ok {
		return nil
	}
	delete(m.messages, id)
	m.used -= msg.Size
	return msg
}

// MakeRoomFor evicts messages, least-valuable-first per the cache's
// prioritization strategy, until needed bytes are free or no more
// candidates qualify. Only messages whose priority is no higher than
// priority are eligible, and isSending (if non-nil) is consulted to skip
// any message currently underway on a live transfer — SPEC_FULL.md §4.9's
// makeRoomForMessage(size, priority) contract, plus the §7/§8 failure
// semantics that a low-priority arrival must never evict a higher-priority
// message and that a message being sent must never be evicted out from
// under its transfer.
//
// The eligible candidates' sizes are tallied before anything is removed,
// so a call that can't free enough room returns (nil, false) without
// mutating the cache at all — there is nothing to roll back because
// nothing was evicted until success was already known.
func (m *MessageCacheManager) MakeRoomFor(needed int64, priority Priority, isSending func(*Message) bool) ([]*Message, bool) {
	if needed > m.capacity {
		return nil, false
	}
	if m.FreeBytes() >= needed {
		return nil, true
	}
	projected := m.FreeBytes()
	var plan []*Message
	for _, candidate := range m.All() {
		if projected >= needed {
			break
		}
		if candidate.Prio > priority {
			continue
		}
		if isSending != nil && isSending(candidate) {
			continue
		}
		plan = append(plan, candidate)
		projected += candidate.Size
	}
	if projected < needed {
		return nil, false
	}
	for _, candidate := range plan {
		m.Remove(candidate.ID)
	}
	return plan, true
}

// ExpireTTL removes and returns every message whose deadline has passed as
// of now, per the router's periodic TTL sweep (SPEC_FULL.md §4.9).
func (m *MessageCacheManager) ExpireTTL(now float64) []*Message {
	var expired []*Message
	for id, msg := range m.messages {
		if msg.Expired(now) {
			delete(m.messages, id)
			m.used -= msg.Size
			expired = append(expired, msg)
		}
	}
	return expired
}
