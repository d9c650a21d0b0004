package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// ClosePayload carries the terminal data with a close event.
type ClosePayload struct {
	Reason     negotiation.EndReason
	FinalPrice int
	At         time.Time
}

// recordClose stamps the terminal reason, price, and time on the session
// state.
// In statekit, actions receive a pointer to the context. Since our context
// is *Context, actions receive **Context.
func recordClose(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).State == nil {
		return
	}

	payload, ok := event.Payload.(ClosePayload)
	if !ok {
		return
	}

	(*ctx).State.Close(payload.Reason, payload.FinalPrice, payload.At)
}
