package dtnsim

//
// Message: immutable identity + mutable path/TTL/forwarding counters +
// property bag. Grounded on the teacher's Frame (model.go), generalized
// from a raw byte payload to a DTN message with hop path and properties.
//

// Priority is an enumerated message priority; higher values are more
// important.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityNormal Priority = 1
	PriorityHigh   Priority = 2
)

// InfiniteTTL is the TTL sentinel meaning "never expires".
const InfiniteTTL float64 = -1

// PropertyKey names a well-known message property. Per SPEC_FULL.md §9's
// "Property bags on messages" design note, known properties get typed
// accessors (see Message.SubID, Message.Copies); PropExtension is the
// escape hatch for application-specific keys.
type PropertyKey string

const (
	// PropSubID carries the publish/subscribe subscription id (int).
	PropSubID PropertyKey = "subID"

	// PropCopies carries the Spray-and-Wait remaining-copy count (int).
	PropCopies PropertyKey = "copies"

	// PropHelloSeq carries a hello message's sequence id (int).
	PropHelloSeq PropertyKey = "helloSeq"
)

// Message is a DTN message: a stable identity plus mutable routing state.
// The zero value is not useful; construct with [NewMessage].
type Message struct {
	// ID is a process-unique stable identifier.
	ID string

	// From is the originating host address.
	From int

	// To is the destination host address. For topic/subscription messages
	// this is unset; ToValid reports whether it should be consulted.
	To      int
	ToValid bool

	// Size is the message size in bytes.
	Size int64

	// Prio is the message's priority.
	Prio Priority

	// CreationTime is the virtual time the message was created.
	CreationTime float64

	// ReceiveTime is the virtual time the message was last received by a
	// host (stamped by Router.messageTransferred); zero until then.
	ReceiveTime float64

	// ResponseSize is the size of an automatic response to generate on
	// delivery; 0 means no response is requested.
	ResponseSize int64

	// TTLMinutes is the configured time-to-live in minutes, or
	// [InfiniteTTL]. It is a creation-relative deadline, not ticked.
	TTLMinutes float64

	// forwardCount is monotone; use IncrementForwardTimes to bump it.
	forwardCount int

	// hops is the ordered host-address path; hops[0] == From always.
	hops []int

	// isResponseMsg marks this message as a response to another message.
	isResponseMsg bool

	// props is the opaque, string-keyed property bag.
	props map[PropertyKey]any
}

// NewMessage constructs a [Message] with hops[0] == from.
func NewMessage(id string, from int, size int64, prio Priority, creationTime float64) *Message {
	return &Message{
		ID:           id,
		From:         from,
		Size:         size,
		Prio:         prio,
		CreationTime: creationTime,
		TTLMinutes:   InfiniteTTL,
		hops:         []int{from},
		props:        make(map[PropertyKey]any),
	}
}

// SetTo sets the destination host address for a unicast message.
func (m *Message) SetTo(to int) {
	m.To = to
	m.ToValid = true
}

// Hops returns the ordered host-address path travelled so far.
func (m *Message) Hops() []int {
	return append([]int{}, m.hops...)
}

// HopCount returns len(hops)-1, per SPEC_FULL.md §8's delivered-message invariant.
func (m *Message) HopCount() int {
	return len(m.hops) - 1
}

// ForwardCount returns the monotone forward counter.
func (m *Message) ForwardCount() int {
	return m.forwardCount
}

// IncrementForwardTimes bumps the forward counter. Monotone by construction:
// there is no corresponding decrement.
func (m *Message) IncrementForwardTimes() {
	m.forwardCount++
}

// AddNodeOnPath appends host to the hop path, called on admit at each
// intermediate or final hop.
func (m *Message) AddNodeOnPath(host int) {
	m.hops = append(m.hops, host)
}

// SetReceiveTime stamps the time this copy was last received.
func (m *Message) SetReceiveTime(t float64) {
	m.ReceiveTime = t
}

// SetRequest marks that this message expects a response of the given size.
// A size of 0 clears the request.
func (m *Message) SetRequest(responseSize int64) {
	m.ResponseSize = responseSize
}

// IsResponse reports whether this message is itself a generated response.
func (m *Message) IsResponse() bool {
	return m.isResponseMsg
}

// MarkAsResponse flags this message as a response to another message.
func (m *Message) MarkAsResponse() {
	m.isResponseMsg = true
}

// Deadline returns the absolute virtual-time TTL deadline, or false if the
// message never expires.
func (m *Message) Deadline() (float64, bool) {
	if m.TTLMinutes < 0 {
		return 0, false
	}
	return m.CreationTime + m.TTLMinutes*60, true
}

// Expired reports whether now is past the message's deadline.
func (m *Message) Expired(now float64) bool {
	deadline, finite := m.Deadline()
	return finite && now >= deadline
}

// SetProperty stores an opaque, typed-by-key property.
func (m *Message) SetProperty(key PropertyKey, value any) {
	m.props[key] = value
}

// GetProperty retrieves a property previously set with SetProperty.
func (m *Message) GetProperty(key PropertyKey) (any, bool) {
	v, ok := m.props[key]
	return v, ok
}

// SubID is a typed accessor over PropSubID; ok is false if unset.
func (m *Message) SubID() (int, bool) {
	v, ok := m.props[PropSubID]
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// Copies is a typed accessor over PropCopies; ok is false if unset.
func (m *Message) Copies() (int, bool) {
	v, ok := m.props[PropCopies]
	if !ok {
		return 0, false
	}
	c, ok := v.(int)
	return c, ok
}

// Replicate returns a deep-enough clone: a distinct *Message with copied
// slices and maps, per SPEC_FULL.md §4.2 ("replicate... preserves all
// fields except that the clone is a distinct object").
func (m *Message) Replicate() *Message {
	clone := *m
	clone.hops = append([]int{}, m.hops...)
	clone.props = make(map[PropertyKey]any, len(m.props))
	for k, v := range m.props {
		clone.props[k] = v
	}
	return &clone
}

// CopyFrom deep-copies other's mutable collections into m, leaving m's own
// identity (ID, From) untouched — mirrors SPEC_FULL.md §4.2's copyFrom.
func (m *Message) CopyFrom(other *Message) {
	m.To = other.To
	m.ToValid = other.ToValid
	m.Size = other.Size
	m.Prio = other.Prio
	m.CreationTime = other.CreationTime
	m.ReceiveTime = other.ReceiveTime
	m.ResponseSize = other.ResponseSize
	m.TTLMinutes = other.TTLMinutes
	m.forwardCount = other.forwardCount
	m.isResponseMsg = other.isResponseMsg
	m.hops = append([]int{}, other.hops...)
	m.props = make(map[PropertyKey]any, len(other.props))
	for k, v := range other.props {
		m.props[k] = v
	}
}
