package dtnsim

//
// Connection: byte-accounted transfer between two interfaces.
//
// Grounded on the teacher's link.go (the simpler, legacy Link/linkForward
// pair) and superseded-in-place by the richer linkfwdcore/delay/fast/full
// family — SPEC_FULL.md §9 notes the source itself contains such duplicated
// declarations and says to treat the richer one as authoritative; that
// split is mirrored here: connection.go holds the shared abstraction,
// connectioncbr.go and connectionvbr.go hold the two richer byte-clock
// variants (§4.5).
//

// Connection is the shared contract for a byte-accounted transfer between
// two NetworkInterfaces. CBRConnection and VBRConnection are its two
// variants, differing only in how the byte clock advances.
type Connection interface {
	// SenderInterface returns the sending interface, valid only while a
	// transfer is underway.
	SenderInterface() *NetworkInterface

	// ReceiverInterface returns the receiving interface, valid only while
	// a transfer is underway.
	ReceiverInterface() *NetworkInterface

	// Underway returns the current Transfer, or nil if idle.
	Underway() *Transfer

	// StartTransfer begins sending msg from the host at fromAddr. It
	// invokes the receiver's router through the receiving interface; see
	// SPEC_FULL.md §4.5's start-transfer protocol. Returns false if the
	// local interface should treat this as immediately denied.
	StartTransfer(fromAddr int, msg *Message) bool

	// Update refreshes speed-dependent accounting and drives the byte
	// clock forward by one tick.
	Update(now float64)

	// IsMessageTransferred reports bytesSent == msgSize.
	IsMessageTransferred() bool

	// GetRemainingByteCount returns max(msgSize-bytesSent, 0).
	GetRemainingByteCount() int64

	// BytesTransferredSoFar returns the bytes sent on the current
	// transfer (0 if idle).
	BytesTransferredSoFar() int64

	// AbortTransfer tears down the underway transfer, accounting partial
	// bytes to throughput only. Legal only when a transfer is underway.
	AbortTransfer()

	// FinalizeTransfer completes the underway transfer, accounting full
	// size to both throughput and goodput. Legal only when
	// IsMessageTransferred() is true.
	FinalizeTransfer()

	// CopyMessageTransfer splices an out-of-synch transfer from otherCon
	// onto this connection, for NetworkInterface.DuplicateTransfer.
	CopyMessageTransfer(fromAddr int, otherCon Connection) bool

	// TotalThroughput returns cumulative bytes transferred including
	// aborted partials.
	TotalThroughput() int64

	// TotalGoodput returns cumulative bytes belonging to fully
	// transferred messages.
	TotalGoodput() int64

	// Speed returns the connection's current effective speed in bytes/s.
	Speed() float64
}

// connBase holds the state and behavior shared by CBRConnection and
// VBRConnection: endpoint bookkeeping, throughput/goodput totals, and the
// finalize/abort protocol (SPEC_FULL.md §3 "Connection" invariants).
type connBase struct {
	from, to         *DTNHost
	fromIface, toIface *NetworkInterface
	up               bool

	bytesThroughput int64
	bytesGoodput    int64

	underway *Transfer

	// senderIface / receiverIface identify, for the current transfer, which
	// of from/to is acting as sender and receiver — a connection is
	// symmetric between transfers (either side can initiate).
	senderIface, receiverIface *NetworkInterface

	interference *InterferenceModel
	logger       Logger
}

func newConnBase(from, to *DTNHost, fromIface, toIface *NetworkInterface, im *InterferenceModel, logger Logger) connBase {
	return connBase{
		from: from, to: to,
		fromIface: fromIface, toIface: toIface,
		up:           true,
		interference: im,
		logger:       logger,
	}
}

func (c *connBase) SenderInterface() *NetworkInterface   { return c.senderIface }
func (c *connBase) ReceiverInterface() *NetworkInterface { return c.receiverIface }
func (c *connBase) Underway() *Transfer                  { return c.underway }
func (c *connBase) TotalThroughput() int64                { return c.bytesThroughput }
func (c *connBase) TotalGoodput() int64                    { return c.bytesGoodput }

// otherEndpoint returns the interface on the opposite side of fromIface.
func (c *connBase) otherEndpoint(fromIface *NetworkInterface) *NetworkInterface {
	if fromIface == c.fromIface {
		return c.toIface
	}
	return c.fromIface
}

// beginStandardStartTransfer runs the shared start-transfer protocol
// (SPEC_FULL.md §4.5): replicate the message through the receiver's
// router, and interpret the return code. self is the concrete Connection
// value (CBRConnection/VBRConnection) embedding this connBase — passed in
// explicitly since an embedded struct cannot recover the outer value.
// Returns (ok, replica) where ok indicates the connection should proceed
// with a byte clock.
func (c *connBase) beginStandardStartTransfer(self Connection, fromAddr int, msg *Message) (bool, *Message) {
	var sender *NetworkInterface
	if c.fromIface.HostAddress() == fromAddr {
		sender = c.fromIface
	} else {
		sender = c.toIface
	}
	receiver := c.otherEndpoint(sender)

	c.senderIface = sender
	c.receiverIface = receiver

	replica := msg.Replicate()
	code := receiver.host.Router().ReceiveMessage(replica, self)
	switch code {
	case RcvOK, DeniedInterference:
		return true, replica
	default:
		return false, nil
	}
}

func finalizeConnection(con Connection) {
	con.FinalizeTransfer()
}

func abortConnection(con Connection) {
	con.AbortTransfer()
}
