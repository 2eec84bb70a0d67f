package dtnsim

//
// InterferenceModel: per-interface registry of in-flight receptions.
//
// Grounded on the teacher's DPIEngine (dpiengine.go): a mutex-guarded map
// keyed by a composite key, with predicate-style query methods. There, the
// key was a flow hash and the record tracked DPI policy state; here the key
// is (messageID, senderInterfaceAddress) and the record tracks whether a
// reception is in-synch and/or interfered — SPEC_FULL.md §4.4.
//

import "sync"

// ReceptionStatus is the outcome of a pure predicate query against the
// interference model.
type ReceptionStatus int

const (
	ReceptionOK ReceptionStatus = iota
	ReceptionIncomplete
	ReceptionInterfered
	ReceptionOutOfSynch
	ReceptionMessageIDNotFound
)

// receptionKey disambiguates same-id receptions from different transmitters
// during a collision, per SPEC_FULL.md §4.4 ("Key lookup uses
// sender-interface address").
type receptionKey struct {
	messageID       string
	senderIfaceAddr int
}

// reception is one in-flight reception record.
type reception struct {
	message    *Message
	connection Connection
	inSynch    bool
	interfered bool
}

// InterferenceModel is the naive interference model: a reception is
// interfered iff another reception is already in progress on the same
// receiving interface when it begins. The zero value is not ready to use;
// construct with [NewInterferenceModel].
type InterferenceModel struct {
	mu         sync.Mutex
	receptions map[receptionKey]*reception
	// byReceiver indexes keys by receiving-interface address so
	// BeginNewReception can answer "is anything else in progress here".
	byReceiver map[int][]receptionKey
}

// NewInterferenceModel constructs an empty [InterferenceModel].
func NewInterferenceModel() *InterferenceModel {
	return &InterferenceModel{
		receptions: make(map[receptionKey]*reception),
		byReceiver: make(map[int][]receptionKey),
	}
}

func keyFor(msg *Message, con Connection) receptionKey {
	return receptionKey{messageID: msg.ID, senderIfaceAddr: con.SenderInterface().Address()}
}

// BeginNewReception registers the start of a new reception of msg on con.
// It returns [ReceptionOK] if no other reception is in progress on the
// receiving interface, else [ReceptionInterfered]. It panics (an invariant
// violation, not a normal outcome) if con has already transferred bytes,
// since synchronization requires starting at zero.
func (im *InterferenceModel) BeginNewReception(msg *Message, con Connection) ReceptionStatus {
	im.mu.Lock()
	defer im.mu.Unlock()

	if con.BytesTransferredSoFar() != 0 {
		panicInvariant(ErrReceptionNotZero, msg.ID, con.ReceiverInterface().HostAddress(),
			"beginNewReception called with non-zero already-transferred bytes")
	}

	receiverAddr := con.ReceiverInterface().Address()
	status := ReceptionOK
	if len(im.byReceiver[receiverAddr]) > 0 {
		status = ReceptionInterfered
	}

	rec := &reception{message: msg, connection: con, inSynch: true, interfered: status == ReceptionInterfered}
	k := keyFor(msg, con)
	im.receptions[k] = rec
	im.byReceiver[receiverAddr] = append(im.byReceiver[receiverAddr], k)
	return status
}

// BeginNewOutOfSynchTransfer registers a reception observed after byte
// zero — used when a third node wanders into an in-progress transfer.
func (im *InterferenceModel) BeginNewOutOfSynchTransfer(msg *Message, con Connection) {
	im.mu.Lock()
	defer im.mu.Unlock()

	receiverAddr := con.ReceiverInterface().Address()
	rec := &reception{message: msg, connection: con, inSynch: false}
	k := keyFor(msg, con)
	im.receptions[k] = rec
	im.byReceiver[receiverAddr] = append(im.byReceiver[receiverAddr], k)
}

// IsMessageTransferredCorrectly is a pure predicate on current state.
func (im *InterferenceModel) IsMessageTransferredCorrectly(msg *Message, con Connection) ReceptionStatus {
	im.mu.Lock()
	defer im.mu.Unlock()

	k := keyFor(msg, con)
	rec, ok := im.receptions[k]
	if !ok {
		return ReceptionMessageIDNotFound
	}
	if con.GetRemainingByteCount() > 0 {
		return ReceptionIncomplete
	}
	if rec.interfered {
		return ReceptionInterfered
	}
	if !rec.inSynch {
		return ReceptionOutOfSynch
	}
	return ReceptionOK
}

// ForceInterference marks the reception's interfered flag.
func (im *InterferenceModel) ForceInterference(msg *Message, con Connection) {
	im.mu.Lock()
	defer im.mu.Unlock()

	k := keyFor(msg, con)
	if rec, ok := im.receptions[k]; ok {
		rec.interfered = true
	}
}

// RetrieveTransferredMessage removes and returns the message if the
// connection's transfer is complete, in-synch, and not interfered; returns
// nil without removing anything if the transfer is still incomplete.
func (im *InterferenceModel) RetrieveTransferredMessage(msg *Message, con Connection) *Message {
	im.mu.Lock()
	defer im.mu.Unlock()

	k := keyFor(msg, con)
	rec, ok := im.receptions[k]
	if !ok {
		return nil
	}
	if con.GetRemainingByteCount() > 0 {
		return nil
	}
	im.removeLocked(k, con.ReceiverInterface().Address())
	if rec.inSynch && !rec.interfered {
		return rec.message
	}
	return nil
}

// AbortMessageReception removes the record and returns the message for
// signaling to listeners.
func (im *InterferenceModel) AbortMessageReception(msg *Message, con Connection) *Message {
	im.mu.Lock()
	defer im.mu.Unlock()

	k := keyFor(msg, con)
	rec, ok := im.receptions[k]
	if !ok {
		return nil
	}
	im.removeLocked(k, con.ReceiverInterface().Address())
	return rec.message
}

// RemoveOutOfSynchTransfer removes the record without returning the
// message — used when the third node's link also fires and cannot be a
// distinct listener.
func (im *InterferenceModel) RemoveOutOfSynchTransfer(msg *Message, con Connection) {
	im.mu.Lock()
	defer im.mu.Unlock()

	k := keyFor(msg, con)
	im.removeLocked(k, con.ReceiverInterface().Address())
}

func (im *InterferenceModel) removeLocked(k receptionKey, receiverAddr int) {
	delete(im.receptions, k)
	lst := im.byReceiver[receiverAddr]
	for i, kk := range lst {
		if kk == k {
			im.byReceiver[receiverAddr] = append(lst[:i], lst[i+1:]...)
			break
		}
	}
}
