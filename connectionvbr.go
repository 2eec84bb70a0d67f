package dtnsim

import "math"

//
// VBRConnection: variable bit rate byte clock, re-derived every tick.
//
// Grounded on the teacher's linkfwdfull.go (LinkFwdFull): that forwarder
// recomputes its effective sending rate on every timer wakeup rather than
// precomputing one deadline, because the rate can change tick to tick
// (DPI-imposed delay, jitter, queue backlog). VBRConnection keeps that
// shape: Update recomputes the instantaneous rate from current endpoint
// speeds and integrates bytesSent by rate*dt, so a rate change between two
// ticks takes effect immediately rather than only at transfer start.
//
// By default (ReconcileContinuous=false) each Update adds the rate sampled
// at the end of the step times the step's duration. An opt-in
// ReconcileContinuous=true mode instead uses the minimum of the rates
// observed at the start and end of the step (or the larger one if that
// minimum is 0). Every mode scales by the elapsed time: there is no mode
// that adds a fixed rate-sized increment per Update call regardless of
// tick duration.
//

// VBRConnection transfers at a rate that is recomputed every Update call
// from the current state of both endpoints, rather than fixed at
// StartTransfer time.
type VBRConnection struct {
	connBase

	// ReconcileContinuous opts into using the smaller of the rates sampled
	// at step start and step end (the larger if the smaller is 0) instead
	// of only the rate sampled at step end.
	ReconcileContinuous bool

	lastUpdateTime float64
	lastRate       float64
	bytesSent      int64
}

var _ Connection = (*VBRConnection)(nil)

// NewVBRConnection constructs an idle VBR connection.
func NewVBRConnection(from, to *DTNHost, fromIface, toIface *NetworkInterface, im *InterferenceModel, logger Logger) *VBRConnection {
	return &VBRConnection{
		connBase: newConnBase(from, to, fromIface, toIface, im, logger),
	}
}

// Speed returns the rate most recently sampled, by StartTransfer or by
// Update (0 before any transfer has started).
func (c *VBRConnection) Speed() float64 { return c.lastRate }

// currentRate is the instantaneous rate: the minimum of the two endpoints'
// configured transmit speeds, mirroring a half-duplex shared link where
// throughput is capped by the slower radio.
func (c *VBRConnection) currentRate() float64 {
	if c.senderIface == nil || c.receiverIface == nil {
		return 0
	}
	return math.Min(c.senderIface.TransmitSpeed(), c.receiverIface.TransmitSpeed())
}

func (c *VBRConnection) StartTransfer(fromAddr int, msg *Message) bool {
	ok, replica := c.beginStandardStartTransfer(c, fromAddr, msg)
	if !ok {
		return false
	}
	c.underway = &Transfer{Sender: fromAddr, Message: replica, InitialBytes: -1}
	c.bytesSent = 0
	c.lastUpdateTime = c.senderIface.host.sc.Clock.Now()
	c.lastRate = c.currentRate()
	c.interference.BeginNewReception(replica, c)
	return true
}

// Update re-derives the rate and integrates bytes sent over [lastUpdateTime, now].
func (c *VBRConnection) Update(now float64) {
	if c.underway == nil {
		return
	}
	dt := now - c.lastUpdateTime
	if dt < 0 {
		dt = 0
	}
	rate := c.currentRate()
	effective := rate
	if c.ReconcileContinuous {
		effective = math.Min(rate, c.lastRate)
		if effective == 0 {
			effective = math.Max(rate, c.lastRate)
		}
	}
	c.bytesSent += int64(effective * dt)
	if c.bytesSent > c.underway.Message.Size {
		c.bytesSent = c.underway.Message.Size
	}
	c.lastRate = rate
	c.lastUpdateTime = now
}

func (c *VBRConnection) IsMessageTransferred() bool {
	return c.underway != nil && c.bytesSent >= c.underway.Message.Size
}

func (c *VBRConnection) GetRemainingByteCount() int64 {
	if c.underway == nil {
		return 0
	}
	remaining := c.underway.Message.Size - c.bytesSent
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *VBRConnection) BytesTransferredSoFar() int64 {
	if c.underway == nil {
		return 0
	}
	return c.bytesSent
}

func (c *VBRConnection) AbortTransfer() {
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

// FinalizeTransfer completes the underway transfer; see CBRConnection's
// FinalizeTransfer for the interference/goodput accounting this mirrors.
func (c *VBRConnection) FinalizeTransfer() {
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

func (c *VBRConnection) CopyMessageTransfer(fromAddr int, otherCon Connection) bool {
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
	c.lastUpdateTime = c.senderIface.host.sc.Clock.Now()
	c.lastRate = c.currentRate()
	c.interference.BeginNewOutOfSynchTransfer(replica, c)
	return true
}
