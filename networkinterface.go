package dtnsim

//
// NetworkInterface: per-node radio port.
//
// Grounded on the teacher's nic.go (address naming) and router.go's
// RouterPort (connection bookkeeping, send/receive primitives, busy
// predicate) — generalized from a packet-routing port to a range-limited
// DTN radio, SPEC_FULL.md §4.6.
//

import "fmt"

// SendResult is the return code of NetworkInterface's send primitives.
type SendResult int

const (
	SendOK SendResult = iota
	SendDenied
)

// NetworkInterface is a per-host radio port.
type NetworkInterface struct {
	// typeTag groups interfaces that can see each other through a shared
	// ConnectivityOptimizer (SPEC_FULL.md §4.7: "one grid instance holds
	// all interfaces of that type").
	typeTag string

	address int

	host *DTNHost

	transmitRange float64
	transmitSpeed float64 // bytes/s
	scanInterval  float64 // seconds; 0 means always scanning
	lastScanTime  float64

	connections  []*connectionHandle
	optimizer    *ConnectivityOptimizer
	interference *InterferenceModel

	logger Logger
}

// connectionHandle pairs a live Connection with the peer interface it
// connects to, from this interface's point of view.
type connectionHandle struct {
	peer *NetworkInterface
	con  Connection
}

// NewNetworkInterface constructs an unbound interface; call BindHost before
// using it in a World.
func NewNetworkInterface(
	sc *SimContext,
	typeTag string,
	transmitRange, transmitSpeed, scanInterval float64,
	optimizer *ConnectivityOptimizer,
	interference *InterferenceModel,
	logger Logger,
) *NetworkInterface {
	return &NetworkInterface{
		typeTag:       typeTag,
		address:       sc.NextInterfaceAddress(),
		transmitRange: transmitRange,
		transmitSpeed: transmitSpeed,
		scanInterval:  scanInterval,
		lastScanTime:  0,
		optimizer:     optimizer,
		interference:  interference,
		logger:        logger,
	}
}

// BindHost attaches this interface to its owning host. An interface must be
// bound exactly once, per SPEC_FULL.md §3's NetworkInterface invariant.
func (ni *NetworkInterface) BindHost(host *DTNHost) {
	if ni.host != nil {
		panicInvariant(ErrDuplicateHostAddress, "", host.Address(),
			"interface already bound to a host")
	}
	ni.host = host
	if ni.optimizer != nil {
		ni.optimizer.Register(ni)
	}
}

// Address returns this interface's process-unique address.
func (ni *NetworkInterface) Address() int { return ni.address }

// HostAddress returns the owning host's address, used in diagnostics.
func (ni *NetworkInterface) HostAddress() int {
	if ni.host == nil {
		return -1
	}
	return ni.host.Address()
}

// TypeTag returns the interface-type tag used for connectivity grouping.
func (ni *NetworkInterface) TypeTag() string { return ni.typeTag }

// TransmitRange returns the configured transmit range.
func (ni *NetworkInterface) TransmitRange() float64 { return ni.transmitRange }

// TransmitSpeed returns the configured transmit speed in bytes/s.
func (ni *NetworkInterface) TransmitSpeed() float64 { return ni.transmitSpeed }

// Location returns the owning host's current location.
func (ni *NetworkInterface) Location() Coord { return ni.host.Location() }

// IsScanning implements SPEC_FULL.md §4.6's scan-cadence policy: always
// scanning if scanInterval==0, else true only once per interval boundary.
func (ni *NetworkInterface) IsScanning(now float64) bool {
	if ni.scanInterval <= 0 {
		return true
	}
	if now-ni.lastScanTime >= ni.scanInterval {
		ni.lastScanTime = now
		return true
	}
	return false
}

// IsBusy reports whether this interface currently has any underway
// transfer, sending or receiving.
func (ni *NetworkInterface) IsBusy() bool {
	for _, h := range ni.connections {
		if h.con.Underway() != nil {
			return true
		}
	}
	return false
}

// IsSendingMessage reports whether this interface is currently the sender
// of msg on any connection. Compares message identity by value (string
// equality), per SPEC_FULL.md §9's "Open questions" decision avoiding the
// source's reference-equality bug.
func (ni *NetworkInterface) IsSendingMessage(msg *Message) bool {
	for _, h := range ni.connections {
		if t := h.con.Underway(); t != nil && h.con.SenderInterface() == ni && t.Message.ID == msg.ID {
			return true
		}
	}
	return false
}

// IsReceiving reports whether this interface is currently the receiver on
// any connection with an underway transfer.
func (ni *NetworkInterface) IsReceiving() bool {
	for _, h := range ni.connections {
		if t := h.con.Underway(); t != nil && h.con.ReceiverInterface() == ni {
			return true
		}
	}
	return false
}

// Neighbors returns the interfaces currently connected to this one.
func (ni *NetworkInterface) Neighbors() []*NetworkInterface {
	out := make([]*NetworkInterface, 0, len(ni.connections))
	for _, h := range ni.connections {
		out = append(out, h.peer)
	}
	return out
}

// ConnectionTo returns the live connection to peer, if any.
func (ni *NetworkInterface) ConnectionTo(peer *NetworkInterface) Connection {
	for _, h := range ni.connections {
		if h.peer == peer {
			return h.con
		}
	}
	return nil
}

// Connections returns all live connections on this interface.
func (ni *NetworkInterface) Connections() []Connection {
	out := make([]Connection, 0, len(ni.connections))
	for _, h := range ni.connections {
		out = append(out, h.con)
	}
	return out
}

// PeerFor returns the peer interface on the other end of con, or nil if
// con is not one of this interface's live connections.
func (ni *NetworkInterface) PeerFor(con Connection) *NetworkInterface {
	for _, h := range ni.connections {
		if h.con == con {
			return h.peer
		}
	}
	return nil
}

// CandidateNeighbors queries the connectivity grid for interfaces of this
// type that are plausibly in range.
func (ni *NetworkInterface) CandidateNeighbors() []*NetworkInterface {
	if ni.optimizer == nil {
		return nil
	}
	return ni.optimizer.Query(ni)
}

// Connect bidirectionally attaches ni and peer via con, per SPEC_FULL.md
// §4.6: "both interfaces' connection lists are updated atomically; both
// routers receive changedConnection after the list mutation."
func Connect(ni, peer *NetworkInterface, con Connection) {
	ni.connections = append(ni.connections, &connectionHandle{peer: peer, con: con})
	peer.connections = append(peer.connections, &connectionHandle{peer: ni, con: con})
	ni.host.Router().ChangedConnection(con)
	peer.host.Router().ChangedConnection(con)
}

// Disconnect bidirectionally removes the connection between ni and peer,
// finalizing a just-completed but not yet finalized transfer, or aborting
// one still underway, before teardown (SPEC_FULL.md §4.6).
func Disconnect(ni, peer *NetworkInterface, con Connection) {
	if t := con.Underway(); t != nil {
		if con.IsMessageTransferred() {
			finalizeConnection(con)
		} else {
			abortConnection(con)
		}
	}
	ni.removeConnection(con)
	peer.removeConnection(con)
	ni.host.Router().ChangedConnection(con)
	peer.host.Router().ChangedConnection(con)
}

func (ni *NetworkInterface) removeConnection(con Connection) {
	for i, h := range ni.connections {
		if h.con == con {
			ni.connections = append(ni.connections[:i], ni.connections[i+1:]...)
			return
		}
	}
}

// SendUnicast starts a transfer of msg from ni to peer over con. It
// returns [SendDenied] if ni is already busy or the receiver's router
// denies admission at this time; otherwise [SendOK] and the transfer
// begins its byte clock.
func (ni *NetworkInterface) SendUnicast(peer *NetworkInterface, con Connection, msg *Message) SendResult {
	if ni.IsBusy() {
		return SendDenied
	}
	if !con.StartTransfer(ni.host.Address(), msg) {
		return SendDenied
	}
	return SendOK
}

// DuplicateTransfer begins sending, on con, in out-of-synch mode, whatever
// message ni is already sending elsewhere — so a newly connected peer can
// still receive a fraction of an in-progress broadcast (SPEC_FULL.md §4.6).
func (ni *NetworkInterface) DuplicateTransfer(con Connection) bool {
	for _, h := range ni.connections {
		if t := h.con.Underway(); t != nil && h.con.SenderInterface() == ni {
			return con.CopyMessageTransfer(ni.host.Address(), h.con)
		}
	}
	return false
}

func (ni *NetworkInterface) String() string {
	return fmt.Sprintf("%s%d", ni.typeTag, ni.address)
}
