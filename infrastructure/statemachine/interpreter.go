package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Interpreter wraps the statekit interpreter with session-specific
// functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the session state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	// Update the context reference in the machine
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start enters the idle state and immediately moves the session live.
func (i *Interpreter) Start(now time.Time) {
	i.interp.Start()
	i.interp.Send(statekit.Event{Type: EventStart})
	i.ctx.State.Start(now)
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// State returns the current lifecycle state.
func (i *Interpreter) State() negotiation.SessionState {
	state := i.interp.State()
	return negotiation.SessionState(state.Value)
}

// Close sends the terminal event for the given reason. The guards reject
// double closes and zero-price deals; the session state reflects whether
// the close took effect.
func (i *Interpreter) Close(reason negotiation.EndReason, finalPrice int, at time.Time) bool {
	if i.ctx.State.Lifecycle.IsTerminal() {
		return false
	}

	i.interp.Send(statekit.Event{
		Type: EventForClose(reason),
		Payload: ClosePayload{
			Reason:     reason,
			FinalPrice: finalPrice,
			At:         at,
		},
	})

	return i.ctx.State.Lifecycle.IsTerminal()
}

// IsTerminal returns true once the interpreter reached a final state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Matches checks if the current state matches the given lifecycle state.
func (i *Interpreter) Matches(state negotiation.SessionState) bool {
	return i.interp.Matches(statekit.StateID(state))
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
