package statemachine

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

func newSessionContext() *Context {
	return NewContext(negotiation.NewState("test-session", negotiation.ModeNeutral, 1000))
}

func TestNewSessionMachine(t *testing.T) {
	t.Parallel()

	machine, err := NewSessionMachine()
	if err != nil {
		t.Fatalf("NewSessionMachine() error = %v", err)
	}
	if machine == nil {
		t.Fatal("NewSessionMachine() returned nil machine")
	}
}

func TestEventForClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason   negotiation.EndReason
		expected string
	}{
		{negotiation.EndDealButton, "DEAL"},
		{negotiation.EndDealNoPrice, "DEAL"},
		{negotiation.EndDealWithPrice, "DEAL"},
		{negotiation.EndTimeFinalized, "DEAL"},
		{negotiation.EndWalkawayTooLow, "DECLINE"},
		{negotiation.EndRoundCap, "DECLINE"},
		{negotiation.EndBotTurnCap, "DECLINE"},
		{negotiation.EndAborted, "DECLINE"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			t.Parallel()

			event := EventForClose(tt.reason)
			if string(event) != tt.expected {
				t.Errorf("EventForClose(%s) = %s, want %s", tt.reason, event, tt.expected)
			}
		})
	}
}

func TestInterpreter_StartMovesLive(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	if interp.State() != negotiation.StateNegotiating {
		t.Errorf("State after start = %s, want negotiating", interp.State())
	}
	if interp.IsTerminal() {
		t.Error("Should not be terminal after start")
	}
	if ctx.State.Lifecycle != negotiation.StateNegotiating {
		t.Errorf("Session lifecycle = %s, want negotiating", ctx.State.Lifecycle)
	}
	if ctx.State.StartTime.IsZero() {
		t.Error("Start() should anchor the deadline clock")
	}
}

func TestInterpreter_CloseDeal(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	closed := interp.Close(negotiation.EndDealButton, 950, time.Unix(60, 0))
	if !closed {
		t.Fatal("Close() should succeed on a live session")
	}

	if interp.State() != negotiation.StateClosedDeal {
		t.Errorf("State = %s, want closed_deal", interp.State())
	}
	if !interp.IsTerminal() {
		t.Error("closed_deal should be terminal")
	}
	if !ctx.State.DealReached {
		t.Error("DealReached should be set")
	}
	if ctx.State.FinalPrice != 950 {
		t.Errorf("FinalPrice = %d, want 950", ctx.State.FinalPrice)
	}
}

func TestInterpreter_CloseDecline(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	closed := interp.Close(negotiation.EndWalkawayTooLow, 0, time.Unix(60, 0))
	if !closed {
		t.Fatal("Close() should succeed on a live session")
	}

	if interp.State() != negotiation.StateClosedDecline {
		t.Errorf("State = %s, want closed_decline", interp.State())
	}
	if ctx.State.DealReached {
		t.Error("DealReached should not be set on decline")
	}
	if ctx.State.FinalPrice != 0 {
		t.Errorf("FinalPrice = %d, want 0", ctx.State.FinalPrice)
	}
}

func TestInterpreter_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	interp.Close(negotiation.EndDealWithPrice, 920, time.Unix(30, 0))
	closed := interp.Close(negotiation.EndWalkawayTooLow, 0, time.Unix(60, 0))
	if closed {
		t.Error("Second Close() should be a no-op")
	}

	if ctx.State.EndedBy != negotiation.EndDealWithPrice {
		t.Errorf("EndedBy = %s, want deal_with_price", ctx.State.EndedBy)
	}
	if ctx.State.FinalPrice != 920 {
		t.Errorf("FinalPrice = %d, want 920", ctx.State.FinalPrice)
	}
}

func TestInterpreter_DealRequiresPrice(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	closed := interp.Close(negotiation.EndDealButton, 0, time.Unix(30, 0))
	if closed {
		t.Error("Deal close with zero price should be rejected")
	}
	if interp.State() != negotiation.StateNegotiating {
		t.Errorf("State = %s, want negotiating", interp.State())
	}
}

func TestInterpreter_Matches(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	interp.Start(time.Unix(0, 0))

	if !interp.Matches(negotiation.StateNegotiating) {
		t.Error("Should match negotiating state")
	}
	if interp.Matches(negotiation.StateClosedDeal) {
		t.Error("Should not match closed_deal state")
	}
}

func TestInterpreter_Context(t *testing.T) {
	t.Parallel()

	machine, _ := NewSessionMachine()
	ctx := newSessionContext()

	interp := NewInterpreter(machine, ctx)
	if interp.Context() != ctx {
		t.Error("Context() should return the interpreter context")
	}
}
