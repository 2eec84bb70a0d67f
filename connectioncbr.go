package dtnsim

//
// CBRConnection: constant bit rate byte clock.
//
// Grounded on the teacher's linkfwddelay.go (LinkFwdWithDelay): that
// function computes a single deadline when a frame is enqueued and fires
// delivery once real time reaches it, with no further per-tick
// recomputation. CBRConnection mirrors that shape in virtual byte-time: at
// StartTransfer it fixes a constant speed, a start time and a deadline
// (startTime + size/speed); Update derives the bytes sent from the time
// elapsed since startTime times the fixed speed, capped at the message
// size, rather than accumulating a per-tick increment.
//

// CBRConnection transfers at a fixed byte rate fixed for the whole
// transfer's lifetime.
type CBRConnection struct {
	connBase

	speed float64 // bytes/s, fixed for the lifetime of a transfer

	startTime    float64
	deadline     float64
	bytesSent    int64
}

var _ Connection = (*CBRConnection)(nil)

// NewCBRConnection constructs an idle CBR connection between the two named
// hosts/interfaces at the given fixed speed.
func NewCBRConnection(from, to *DTNHost, fromIface, toIface *NetworkInterface, speed float64, im *InterferenceModel, logger Logger) *CBRConnection {
	return &CBRConnection{
		connBase: newConnBase(from, to, fromIface, toIface, im, logger),
		speed:    speed,
	}
}

func (c *CBRConnection) Speed() float64 { return c.speed }

// StartTransfer begins a constant-rate transfer of msg, per SPEC_FULL.md
// §4.5's start-transfer protocol.
func (c *CBRConnection) StartTransfer(fromAddr int, msg *Message) bool {
	ok, replica := c.beginStandardStartTransfer(c, fromAddr, msg)
	if !ok {
		return false
	}
	c.underway = &Transfer{Sender: fromAddr, Message: replica, InitialBytes: -1}
	c.bytesSent = 0
	c.startTime = c.senderIface.host.sc.Clock.Now()
	if c.speed > 0 {
		c.deadline = c.startTime + float64(replica.Size)/c.speed
	} else {
		c.deadline = c.startTime
	}
	c.interference.BeginNewReception(replica, c)
	return true
}

// Update advances the byte clock. Because the rate is fixed for the whole
// transfer, bytesSent is simply (now - startTime) * speed, capped at the
// message size, rather than accumulated tick-by-tick.
func (c *CBRConnection) Update(now float64) {
	if c.underway == nil {
		return
	}
	if c.speed <= 0 {
		return
	}
	elapsed := now - c.startTime
	if elapsed < 0 {
		elapsed = 0
	}
	sent := int64(elapsed * c.speed)
	if sent > c.underway.Message.Size {
		sent = c.underway.Message.Size
	}
	c.bytesSent = sent
}

func (c *CBRConnection) IsMessageTransferred() bool {
	return c.underway != nil && c.bytesSent >= c.underway.Message.Size
}

func (c *CBRConnection) GetRemainingByteCount() int64 {
	if c.underway == nil {
		return 0
	}
	remaining := c.underway.Message.Size - c.bytesSent
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *CBRConnection) BytesTransferredSoFar() int64 {
	if c.underway == nil {
		return 0
	}
	return c.bytesSent
}

func (c *CBRConnection) AbortTransfer() {
	if c.underway == nil {
		return
	}
	c.bytesThroughput += c.bytesSent
	recv := c.receiverIface
	msg := c.interference.AbortMessageReception(c.underway.Message, c)
	c.underway = nil
	c.bytesSent = 0
	if msg != nil && recv != nil {
		recv.host.Router().MessageAborted(msg, c)
	}
}

// FinalizeTransfer completes the underway transfer. If the interference
// model reports a collision, the receiver's router is notified via
// MessageInterfered instead of MessageTransferred — the bytes still count
// toward throughput (the air time was spent) but not toward goodput.
func (c *CBRConnection) FinalizeTransfer() {
	if c.underway == nil {
		return
	}
	size := c.underway.Message.Size
	c.bytesThroughput += size
	recv := c.receiverIface

	if c.interference.IsMessageTransferredCorrectly(c.underway.Message, c) == ReceptionInterfered {
		msg := c.interference.AbortMessageReception(c.underway.Message, c)
		c.underway = nil
		c.bytesSent = 0
		if msg != nil && recv != nil {
			recv.host.Router().MessageInterfered(msg, c)
		}
		return
	}

	c.bytesGoodput += size
	msg := c.interference.RetrieveTransferredMessage(c.underway.Message, c)
	c.underway = nil
	c.bytesSent = 0
	if msg != nil && recv != nil {
		recv.host.Router().MessageTransferred(msg, c)
	}
}

// CopyMessageTransfer splices an out-of-synch copy of otherCon's underway
// transfer onto c, starting at otherCon's current byte offset, per
// SPEC_FULL.md §4.6's DuplicateTransfer.
func (c *CBRConnection) CopyMessageTransfer(fromAddr int, otherCon Connection) bool {
	t := otherCon.Underway()
	if t == nil {
		return false
	}
	ok, replica := c.beginStandardStartTransfer(c, fromAddr, t.Message)
	if !ok {
		return false
	}
	offset := otherCon.BytesTransferredSoFar()
	c.underway = &Transfer{Sender: fromAddr, Message: replica, InitialBytes: offset}
	c.bytesSent = offset
	c.startTime = c.senderIface.host.sc.Clock.Now() - float64(offset)/c.speedOrOne()
	c.deadline = c.startTime + float64(replica.Size)/c.speedOrOne()
	c.interference.BeginNewOutOfSynchTransfer(replica, c)
	return true
}

func (c *CBRConnection) speedOrOne() float64 {
	if c.speed <= 0 {
		return 1
	}
	return c.speed
}
