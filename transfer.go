package dtnsim

//
// Transfer: the tuple of state describing bytes currently in flight on a
// Connection. SPEC_FULL.md §3 "Transfer".
//

// Transfer describes an in-progress byte transfer on a [Connection].
type Transfer struct {
	// Sender is the host address that initiated the transfer.
	Sender int

	// Message is the message being transferred. For the sender this is
	// its buffer copy; for the receiver this is a replica created at
	// StartTransfer time.
	Message *Message

	// InitialBytes, when non-negative, is the number of bytes this
	// transfer should be considered to have already sent at start — used
	// by CopyMessageTransfer to splice an out-of-synch transfer at a
	// non-zero offset. -1 means "start at zero" (the common case).
	InitialBytes int64
}
