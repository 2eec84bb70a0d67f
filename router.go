package dtnsim

//
// Router: abstract per-host message routing policy.
//
// Grounded on the teacher's Router/RouterPort (router.go): there, a
// Router owns a routing table and a pool of workers pulling packets off
// an incoming channel; ports are the per-link attachment points. Here, a
// Router owns a MessageCacheManager and reacts synchronously to
// NetworkInterface/Connection events instead of running its own
// goroutines (SPEC_FULL.md §5: no parallelism on the simulation hot
// path) — BaseRouter plays the role of the worker dispatch loop, but as
// plain method calls driven by World.Tick rather than a channel-fed
// goroutine pool.
//

// ReceiveCode is returned by Router.ReceiveMessage and interpreted by the
// Connection that invoked it to decide whether to proceed with a byte
// clock, per SPEC_FULL.md §4.5's start-transfer protocol.
type ReceiveCode int

const (
	// RcvOK admits the message; a transfer may proceed.
	RcvOK ReceiveCode = iota
	// RcvDenied rejects the message outright (e.g. cache full and no
	// lower-priority message can be evicted to make room).
	RcvDenied
	// RcvDuplicate rejects because this host already holds or has
	// already delivered this message.
	RcvDuplicate
	// DeniedInterference admits the connection's byte clock (so
	// listeners still see an interfered reception) but the message
	// will never be retrievable because of a collision.
	DeniedInterference
)

// Router is the pluggable per-host message routing policy, implementing
// the full event surface a World drives a host's router through
// (SPEC_FULL.md §4.9).
type Router interface {
	// CreateNewMessage is called when the owning host originates msg
	// locally (as opposed to receiving it over a Connection).
	CreateNewMessage(msg *Message) ReceiveCode

	// ReceiveMessage is called by a Connection's StartTransfer when a
	// neighbor begins sending msg to this router's host.
	ReceiveMessage(msg *Message, con Connection) ReceiveCode

	// MessageTransferred is called by a Connection once a transfer
	// completes successfully and is retrievable from the interference
	// model.
	MessageTransferred(msg *Message, con Connection)

	// MessageAborted is called when a transfer is torn down before
	// completion (e.g. the connection went out of range).
	MessageAborted(msg *Message, con Connection)

	// MessageInterfered is called when a completed transfer turns out
	// to have collided with another reception on the same interface.
	MessageInterfered(msg *Message, con Connection)

	// DeleteMessage removes id from this router's cache, e.g. after a
	// delivery acknowledgement or TTL expiry.
	DeleteMessage(id string) *Message

	// Update is called once per World tick to let the router drive any
	// of its own per-tick logic (broadcasting, TTL sweeps, hello pumps).
	Update(now float64)

	// ChangedConnection is called whenever a Connection attached to this
	// router's host's interfaces is created or torn down.
	ChangedConnection(con Connection)

	// Cache exposes the router's message cache, mainly for listeners
	// and tests.
	Cache() *MessageCacheManager
}

// BaseRouter implements the bookkeeping shared by every concrete router
// (message cache ownership, TTL sweeping, listener fan-out) without
// committing to a forwarding policy. Concrete routers embed BaseRouter
// and override the methods that need policy-specific behavior —
// mirroring how the teacher's RouterPort supplies shared plumbing
// (queues, close semantics) that every link endpoint reuses verbatim.
type BaseRouter struct {
	host *DTNHost
	sc   *SimContext

	cache *MessageCacheManager

	listeners []Listener

	ttlSweepInterval float64
	lastTTLSweep     float64

	logger Logger
}

// NewBaseRouter constructs the shared state for a concrete router.
func NewBaseRouter(host *DTNHost, sc *SimContext, cache *MessageCacheManager, ttlSweepInterval float64, logger Logger) BaseRouter {
	return BaseRouter{
		host:             host,
		sc:               sc,
		cache:            cache,
		ttlSweepInterval: ttlSweepInterval,
		logger:           logger,
	}
}

func (r *BaseRouter) Cache() *MessageCacheManager { return r.cache }

// AddListener registers a Listener for this router's events.
func (r *BaseRouter) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

func (r *BaseRouter) notifyNewMessage(msg *Message) {
	for _, l := range r.listeners {
		l.NewMessage(r.host.Address(), msg)
	}
}

func (r *BaseRouter) notifyTransferStarted(msg *Message, con Connection) {
	for _, l := range r.listeners {
		l.MessageTransferStarted(msg, con)
	}
}

func (r *BaseRouter) notifyTransferred(msg *Message, con Connection) {
	for _, l := range r.listeners {
		l.MessageTransferred(msg, con)
	}
}

func (r *BaseRouter) notifyAborted(msg *Message, con Connection) {
	for _, l := range r.listeners {
		l.MessageAborted(msg, con)
	}
}

func (r *BaseRouter) notifyTransmissionPerformed(con Connection) {
	for _, l := range r.listeners {
		l.TransmissionPerformed(con)
	}
}

func (r *BaseRouter) notifyInterfered(msg *Message, con Connection) {
	for _, l := range r.listeners {
		l.MessageTransmissionInterfered(msg, con)
	}
}

func (r *BaseRouter) notifyDeleted(msg *Message) {
	for _, l := range r.listeners {
		l.MessageDeleted(r.host.Address(), msg)
	}
}

// DeleteMessage removes id from the cache and notifies listeners.
func (r *BaseRouter) DeleteMessage(id string) *Message {
	msg := r.cache.Remove(id)
	if msg != nil {
		r.notifyDeleted(msg)
	}
	return msg
}

// SweepTTL runs the periodic TTL sweep described by SPEC_FULL.md §4.9,
// at most once per ttlSweepInterval of virtual time. Returns the
// messages it expired, for callers (e.g. BroadcastEnabledRouter.Update)
// that also want to notify listeners.
func (r *BaseRouter) SweepTTL(now float64) []*Message {
	if r.ttlSweepInterval > 0 && now-r.lastTTLSweep < r.ttlSweepInterval {
		return nil
	}
	r.lastTTLSweep = now
	expired := r.cache.ExpireTTL(now)
	for _, msg := range expired {
		r.notifyDeleted(msg)
	}
	return expired
}

// admitWithEviction is the shared "make room, then add" admission path
// used by CreateNewMessage and ReceiveMessage across all concrete
// routers, per SPEC_FULL.md §4.9's makeRoomForMessage. Eviction never
// touches a higher-priority message than msg, never evicts a message
// currently underway on a transfer, and listeners only hear about a
// deletion once admission has actually succeeded — a denied admission
// leaves the cache exactly as it was.
func (r *BaseRouter) admitWithEviction(msg *Message) ReceiveCode {
	if r.cache.Contains(msg.ID) {
		return RcvDuplicate
	}
	evicted, ok := r.cache.MakeRoomFor(msg.Size, msg.Prio, r.isBeingSent)
	if !ok {
		return RcvDenied
	}
	for _, victim := range evicted {
		r.notifyDeleted(victim)
	}
	r.cache.Add(msg)
	return RcvOK
}

// isBeingSent reports whether msg is currently underway as an outbound
// transfer on any of this router's host's interfaces, so MakeRoomFor can
// skip it as an eviction candidate.
func (r *BaseRouter) isBeingSent(msg *Message) bool {
	for _, ni := range r.host.Interfaces() {
		if ni.IsSendingMessage(msg) {
			return true
		}
	}
	return false
}
