package dtnsim

//
// Core data model: logger, error sentinels, shared enums.
//

import "errors"

// Logger is the logger threaded through the simulator's constructors.
// Expected run-time outcomes (denials, interference, TTL expiry) are not
// logged by the core; they are reported as typed codes (see [ReceiveCode])
// and listener events rather than as errors.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}

// Configuration errors (reported eagerly at construction; fatal for the run).
var (
	// ErrBufferTooSmall indicates a MessageCacheManager was configured with
	// a bufferSize too small to ever hold a single message.
	ErrBufferTooSmall = errors.New("dtnsim: buffer size too small")

	// ErrInvalidCellSizeMultiplier indicates Optimization.cellSizeMult < 2.
	ErrInvalidCellSizeMultiplier = errors.New("dtnsim: cellSizeMult must be >= 2")

	// ErrUnknownPrioritizationStrategy indicates an unrecognized strategy name.
	ErrUnknownPrioritizationStrategy = errors.New("dtnsim: unknown caching prioritization strategy")

	// ErrUnknownForwardingOrderStrategy indicates an unrecognized strategy name.
	ErrUnknownForwardingOrderStrategy = errors.New("dtnsim: unknown message forwarding order strategy")

	// ErrUnknownDisseminationMode indicates an unrecognized subDisMode name.
	ErrUnknownDisseminationMode = errors.New("dtnsim: unknown dissemination mode")

	// ErrMissingSetting indicates a required settings key was absent.
	ErrMissingSetting = errors.New("dtnsim: missing required setting")

	// ErrUnknownRouterKind indicates a Group.<n>.router value BuildScenario
	// does not implement.
	ErrUnknownRouterKind = errors.New("dtnsim: unknown router kind")

	// ErrUnknownMovementModel indicates a Group.<n>.movementModel value
	// BuildScenario does not implement.
	ErrUnknownMovementModel = errors.New("dtnsim: unknown movement model")
)

// Simulation invariant violations (fatal; indicate a bug in router or
// connection logic). These are reported with panics that name the
// offending ids, carried by [InvariantViolation].
var (
	// ErrUnknownMessage names a (messageID, connection) pair the
	// interference model never saw. The model's own predicates report that
	// case as ReceptionMessageIDNotFound rather than returning this error.
	ErrUnknownMessage = errors.New("dtnsim: unknown message id")

	// ErrReceptionNotZero indicates beginNewReception was called on a
	// connection whose already-transferred byte count is non-zero.
	ErrReceptionNotZero = errors.New("dtnsim: reception must begin at byte zero")

	// ErrNoActiveTransfer indicates abortTransfer/finalizeTransfer was
	// called with no underway Transfer.
	ErrNoActiveTransfer = errors.New("dtnsim: no active transfer on connection")

	// ErrTransferIncomplete indicates finalizeTransfer was called before
	// all bytes were transferred.
	ErrTransferIncomplete = errors.New("dtnsim: transfer is not yet complete")

	// ErrDuplicateHostAddress indicates the world tried to register two
	// hosts under the same address.
	ErrDuplicateHostAddress = errors.New("dtnsim: duplicate host address")

	// ErrDeniedDueToSend indicates a receiving interface was already
	// sending when asked to begin a reception; CSMA/CA at the interface
	// level must prevent this from ever reaching the router.
	ErrDeniedDueToSend = errors.New("dtnsim: reception denied because interface is sending (CSMA/CA bug)")
)

// InvariantViolation wraps a simulation invariant violation (§7 kind 2 in
// SPEC_FULL.md) with enough context to name the offending entities in a
// diagnostic. Callers that hit one of these should treat the run as dead;
// the constructors that can raise it panic with this value.
type InvariantViolation struct {
	// Err is the underlying sentinel (see the invariant-violation var block).
	Err error

	// HostAddress optionally names the offending host.
	HostAddress int

	// MessageID optionally names the offending message.
	MessageID string

	// Detail is a free-form diagnostic string.
	Detail string
}

func (e *InvariantViolation) Error() string {
	s := "dtnsim: invariant violation: " + e.Err.Error()
	if e.MessageID != "" {
		s += " message=" + e.MessageID
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

// panicInvariant raises an [InvariantViolation] for a simulation bug.
func panicInvariant(err error, messageID string, hostAddress int, detail string) {
	panic(&InvariantViolation{
		Err:         err,
		HostAddress: hostAddress,
		MessageID:   messageID,
		Detail:      detail,
	})
}
