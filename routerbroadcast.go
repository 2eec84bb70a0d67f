package dtnsim

//
// BroadcastEnabledRouter: shared forwarding engine for flooding-style
// routers (epidemic, Spray-and-Wait, and their subscription-aware
// variants). Concrete routers set the CopyPolicy hook to decide how many
// (if any) replicas a peer should get; everything else — admission,
// delivery detection, per-connection one-message-per-tick exchange — is
// shared, per SPEC_FULL.md §4.9's BroadcastEnabledRouter.
//

// CopyPolicy decides, for a message about to be offered to a peer,
// whether this host should keep retransmitting it afterward (true) or
// should drop its own copy once the send begins (false) — the hook
// Spray-and-Wait uses to decrement its copy budget, and epidemic
// flooding always answers true for.
type CopyPolicy func(msg *Message, peer *DTNHost) (keep bool)

// PrepareSendHook runs immediately before a message is handed to
// SendUnicast, with the chance to mutate the cache's own copy (e.g.
// splitting a Spray-and-Wait copy budget) before the Connection
// replicates it for the peer.
type PrepareSendHook func(msg *Message, peer *DTNHost)

// OfferPolicy additionally restricts which peers a message may be offered
// to, beyond the built-in "peer doesn't already have it" and
// subscription checks — Spray-and-Wait uses this to restrict a
// single-copy message to its final destination only ("wait" phase).
type OfferPolicy func(msg *Message, peer *DTNHost) bool

// BroadcastEnabledRouter implements a flood-style forwarding policy: on
// every connectivity change or tick, it tries to push one not-yet-seen
// message per idle connection, in the cache's forwarding-offer order.
type BroadcastEnabledRouter struct {
	BaseRouter

	dissemination *DisseminationPolicy
	copyPolicy    CopyPolicy
	prepareSend   PrepareSendHook
	offerPolicy   OfferPolicy

	// delivered tracks message IDs this host has already surfaced to
	// listeners as delivered, so a message addressed here that arrives
	// twice (e.g. via two interfaces) is only reported once.
	delivered map[string]bool

	// receiving tracks message IDs currently reserved in the cache by an
	// in-progress incoming transfer — ReceiveMessage reserves capacity
	// immediately (so a second admission attempt can see the reservation
	// and refuse to double-spend the cache budget) but the message isn't
	// actually offerable to other peers until MessageTransferred confirms
	// it arrived intact.
	receiving map[string]bool
}

var _ Router = &BroadcastEnabledRouter{}

// NewBroadcastEnabledRouter constructs a router with the given message
// cache, optional dissemination policy (nil means "accept everything",
// i.e. a plain, non-subscription-aware flooding router), and copy
// policy.
func NewBroadcastEnabledRouter(host *DTNHost, sc *SimContext, cache *MessageCacheManager, dissemination *DisseminationPolicy, copyPolicy CopyPolicy, ttlSweepInterval float64, logger Logger) *BroadcastEnabledRouter {
	if copyPolicy == nil {
		copyPolicy = func(*Message, *DTNHost) bool { return true }
	}
	return &BroadcastEnabledRouter{
		BaseRouter:    NewBaseRouter(host, sc, cache, ttlSweepInterval, logger),
		dissemination: dissemination,
		copyPolicy:    copyPolicy,
		delivered:     make(map[string]bool),
		receiving:     make(map[string]bool),
	}
}

// CreateNewMessage admits a locally originated message into the cache and
// notifies listeners, per SPEC_FULL.md §4.9.
func (r *BroadcastEnabledRouter) CreateNewMessage(msg *Message) ReceiveCode {
	code := r.admitWithEviction(msg)
	if code == RcvOK {
		r.notifyNewMessage(msg)
		r.maybeDeliverLocally(msg)
	}
	return code
}

// ReceiveMessage implements the subscription check (if any), admission
// with eviction, and local-delivery detection for a message arriving over
// a Connection.
func (r *BroadcastEnabledRouter) ReceiveMessage(msg *Message, con Connection) ReceiveCode {
	if r.dissemination != nil && !r.dissemination.Admit(msg) {
		return RcvDenied
	}
	code := r.admitWithEviction(msg)
	if code == RcvOK {
		r.receiving[msg.ID] = true
		r.notifyTransferStarted(msg, con)
	}
	return code
}

// MessageTransferred is called once a Connection's byte clock completes
// and the interference model confirms an uncollided reception.
func (r *BroadcastEnabledRouter) MessageTransferred(msg *Message, con Connection) {
	delete(r.receiving, msg.ID)
	msg.SetReceiveTime(r.sc.Clock.Now())
	msg.AddNodeOnPath(r.host.Address())
	r.notifyTransferred(msg, con)
	r.maybeDeliverLocally(msg)
}

// MessageAborted removes the partially-received replica from the cache:
// ReceiveMessage already admitted it via admitWithEviction, so this
// releases that reservation.
func (r *BroadcastEnabledRouter) MessageAborted(msg *Message, con Connection) {
	delete(r.receiving, msg.ID)
	r.cache.Remove(msg.ID)
	r.notifyAborted(msg, con)
}

// MessageInterfered keeps the (corrupted) reservation out of the cache
// and notifies listeners; the reservation is removed the same way as an
// abort since the bytes never amounted to a usable message.
func (r *BroadcastEnabledRouter) MessageInterfered(msg *Message, con Connection) {
	delete(r.receiving, msg.ID)
	r.cache.Remove(msg.ID)
	r.notifyInterfered(msg, con)
}

// ChangedConnection triggers an immediate exchange attempt so that a
// freshly (dis)connected peer doesn't have to wait for the next tick.
func (r *BroadcastEnabledRouter) ChangedConnection(con Connection) {
	r.exchangeOn(con)
}

// Update runs the TTL sweep and attempts one broadcast per currently idle
// connection, per SPEC_FULL.md §4.9's per-tick router update.
func (r *BroadcastEnabledRouter) Update(now float64) {
	r.SweepTTL(now)
	for _, ni := range r.host.Interfaces() {
		for _, con := range ni.Connections() {
			r.exchangeOn(con)
		}
	}
}

// exchangeOn attempts exactly one tryBroadcastOneMessage per connection
// per call — this keeps a single large cache from monopolizing a
// link and starving other peers sharing the same tick.
func (r *BroadcastEnabledRouter) exchangeOn(con Connection) {
	if con.Underway() != nil {
		return
	}
	r.tryBroadcastOneMessage(con)
}

// tryBroadcastOneMessage offers the first not-yet-held, policy-admitted
// message in forwarding-offer order to the peer across con.
func (r *BroadcastEnabledRouter) tryBroadcastOneMessage(con Connection) bool {
	sender := r.localInterface(con)
	if sender == nil {
		return false
	}
	peer := r.peerInterface(con)
	if peer == nil || peer.host == nil {
		return false
	}

	for _, msg := range r.cache.ForOffer() {
		if r.receiving[msg.ID] {
			continue
		}
		if peer.host.Router().Cache().Contains(msg.ID) {
			continue
		}
		if msg.ToValid && msg.To == peer.host.Address() {
			// always worth sending directly to the final destination
		} else {
			if r.dissemination != nil && !r.peerWouldAdmit(msg, peer.host) {
				continue
			}
			if r.offerPolicy != nil && !r.offerPolicy(msg, peer.host) {
				continue
			}
		}
		if r.prepareSend != nil {
			r.prepareSend(msg, peer.host)
		}
		if sender.SendUnicast(peer, con, msg) == SendOK {
			msg.IncrementForwardTimes()
			r.notifyTransmissionPerformed(con)
			if !r.copyPolicy(msg, peer.host) {
				r.cache.Remove(msg.ID)
			}
			return true
		}
	}
	return false
}

// peerWouldAdmit is a best-effort prediction of whether offering msg to
// peerHost is worthwhile; routers run in the same process so this may
// directly ask peerHost's own dissemination policy, the way a real DTN
// protocol would instead exchange a summary vector of subscriptions
// during the hello handshake (routerhello.go) before ever attempting a
// transfer.
func (r *BroadcastEnabledRouter) peerWouldAdmit(msg *Message, peerHost *DTNHost) bool {
	type disseminationAware interface {
		Dissemination() *DisseminationPolicy
	}
	if da, ok := peerHost.Router().(disseminationAware); ok {
		if policy := da.Dissemination(); policy != nil {
			return policy.Admit(msg)
		}
	}
	return true
}

// localInterface returns whichever of this host's interfaces owns con.
func (r *BroadcastEnabledRouter) localInterface(con Connection) *NetworkInterface {
	for _, ni := range r.host.Interfaces() {
		if ni.PeerFor(con) != nil {
			return ni
		}
	}
	return nil
}

// peerInterface returns the interface on the far end of con.
func (r *BroadcastEnabledRouter) peerInterface(con Connection) *NetworkInterface {
	ni := r.localInterface(con)
	if ni == nil {
		return nil
	}
	return ni.PeerFor(con)
}

// maybeDeliverLocally reports a single MessageDelivered event the first
// time a message addressed to this host is observed in its cache.
func (r *BroadcastEnabledRouter) maybeDeliverLocally(msg *Message) {
	if !msg.ToValid || msg.To != r.host.Address() {
		return
	}
	if r.delivered[msg.ID] {
		return
	}
	r.delivered[msg.ID] = true
	for _, l := range r.listeners {
		l.MessageDelivered(r.host.Address(), msg)
	}
}

// Dissemination exposes the router's subscription policy, if any, for
// peerWouldAdmit's same-process prediction.
func (r *BroadcastEnabledRouter) Dissemination() *DisseminationPolicy {
	return r.dissemination
}

// SetPrepareSend installs a PrepareSendHook, used by Spray-and-Wait to
// split its copy budget just before a send attempt.
func (r *BroadcastEnabledRouter) SetPrepareSend(hook PrepareSendHook) {
	r.prepareSend = hook
}

// SetOfferPolicy installs an OfferPolicy, used by Spray-and-Wait to
// restrict single-copy messages to their final destination.
func (r *BroadcastEnabledRouter) SetOfferPolicy(policy OfferPolicy) {
	r.offerPolicy = policy
}
