// Package statemachine provides the statekit integration for the
// negotiation session lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Context carries the session state through the state machine.
type Context struct {
	State *negotiation.State
}

// NewContext creates a machine context around a session state.
func NewContext(state *negotiation.State) *Context {
	return &Context{State: state}
}

// State IDs as StateID type for statekit.
const (
	stateIdle          statekit.StateID = statekit.StateID(negotiation.StateIdle)
	stateNegotiating   statekit.StateID = statekit.StateID(negotiation.StateNegotiating)
	stateClosedDeal    statekit.StateID = statekit.StateID(negotiation.StateClosedDeal)
	stateClosedDecline statekit.StateID = statekit.StateID(negotiation.StateClosedDecline)
)

// Event types accepted by the session statechart.
const (
	EventStart   statekit.EventType = "START"
	EventDeal    statekit.EventType = "DEAL"
	EventDecline statekit.EventType = "DECLINE"
)

// NewSessionMachine creates the canonical session statechart. A session
// starts idle, negotiates once, and closes exactly once as either a deal
// or a decline. Both closed states are final; no transition leaves them.
func NewSessionMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("session").
		WithInitial(stateIdle).
		WithContext(&Context{}).
		WithAction("recordClose", recordClose).
		WithGuard("notClosed", guardNotClosed).
		WithGuard("hasPrice", guardHasPrice).
		State(stateIdle).
			On(EventStart).Target(stateNegotiating).
			Done().
		State(stateNegotiating).
			On(EventDeal).Target(stateClosedDeal).Guard("notClosed").Guard("hasPrice").Do("recordClose").
			On(EventDecline).Target(stateClosedDecline).Guard("notClosed").Do("recordClose").
			Done().
		State(stateClosedDeal).
			Final().
			Done().
		State(stateClosedDecline).
			Final().
			Done().
		Build()
}

// EventForClose returns the event type for a terminal reason.
func EventForClose(reason negotiation.EndReason) statekit.EventType {
	if reason.IsDeal() {
		return EventDeal
	}
	return EventDecline
}
