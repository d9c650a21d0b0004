package negotiation

import "errors"

// Domain errors for the negotiation engine.
var (
	// ErrInvalidPolicy indicates an inconsistent set of price constants.
	ErrInvalidPolicy = errors.New("invalid negotiation policy")

	// ErrInvalidMode indicates an unrecognized experimental condition.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrSessionClosed indicates an operation on a terminated session.
	ErrSessionClosed = errors.New("session already closed")

	// ErrSessionNotStarted indicates an operation before session start.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrSessionStarted indicates a duplicate start action.
	ErrSessionStarted = errors.New("session already started")
)
