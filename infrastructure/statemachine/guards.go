package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// guardNotClosed rejects close events once the session already carries a
// terminal reason.
// Note: in statekit, guards receive the context by value. Since our context
// is *Context, the guard receives *Context directly.
func guardNotClosed(ctx *Context, _ statekit.Event) bool {
	if ctx == nil || ctx.State == nil {
		return false
	}
	return !ctx.State.Lifecycle.IsTerminal()
}

// guardHasPrice requires a positive final price on deal events. Declines
// carry no price and bypass this guard.
func guardHasPrice(_ *Context, event statekit.Event) bool {
	payload, ok := event.Payload.(ClosePayload)
	if !ok {
		return false
	}
	return payload.FinalPrice > 0
}
