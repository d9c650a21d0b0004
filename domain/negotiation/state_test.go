package negotiation

import (
	"testing"
	"time"
)

func TestSessionState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    SessionState
		expected bool
	}{
		{StateIdle, false},
		{StateNegotiating, false},
		{StateClosedDeal, true},
		{StateClosedDecline, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("SessionState(%q).IsTerminal() = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestSessionState_IsValid(t *testing.T) {
	for _, s := range AllSessionStates() {
		if !s.IsValid() {
			t.Errorf("SessionState(%q).IsValid() = false, want true", s)
		}
	}
	if SessionState("open").IsValid() {
		t.Error(`SessionState("open").IsValid() = true, want false`)
	}
}

func TestState_Close_Idempotent(t *testing.T) {
	s := NewState("s1", ModeNeutral, 1000)
	s.Start(time.Unix(0, 0))

	if !s.Close(EndDealButton, 950, time.Unix(60, 0)) {
		t.Fatal("first Close() = false, want true")
	}
	if s.Close(EndRoundCap, 0, time.Unix(61, 0)) {
		t.Error("second Close() = true, want false")
	}

	if s.Lifecycle != StateClosedDeal {
		t.Errorf("Lifecycle = %q, want %q", s.Lifecycle, StateClosedDeal)
	}
	if s.EndedBy != EndDealButton {
		t.Errorf("EndedBy = %q, want %q (first close wins)", s.EndedBy, EndDealButton)
	}
	if s.FinalPrice != 950 {
		t.Errorf("FinalPrice = %d, want 950", s.FinalPrice)
	}
}

func TestState_Close_DeclineClearsPrice(t *testing.T) {
	s := NewState("s1", ModePower, 1000)
	s.Start(time.Unix(0, 0))
	s.CurrentOffer = 940

	s.Close(EndWalkawayTooLow, 0, time.Unix(60, 0))

	if s.DealReached {
		t.Error("DealReached = true on decline")
	}
	if s.FinalPrice != 0 {
		t.Errorf("FinalPrice = %d, want 0 on decline", s.FinalPrice)
	}
	if s.Lifecycle != StateClosedDecline {
		t.Errorf("Lifecycle = %q, want %q", s.Lifecycle, StateClosedDecline)
	}
}

func TestState_RecordBuyerOffer(t *testing.T) {
	s := NewState("s1", ModeNeutral, 1000)

	s.RecordBuyerOffer(700)
	s.RecordBuyerOffer(650)

	if s.RoundIndex != 2 {
		t.Errorf("RoundIndex = %d, want 2", s.RoundIndex)
	}
	if s.BestBuyerOffer != 700 {
		t.Errorf("BestBuyerOffer = %d, want running max 700", s.BestBuyerOffer)
	}
}

func TestState_Elapsed(t *testing.T) {
	s := NewState("s1", ModeNeutral, 1000)

	if got := s.Elapsed(time.Unix(100, 0)); got != 0 {
		t.Errorf("Elapsed() before start = %v, want 0", got)
	}

	s.Start(time.Unix(100, 0))
	if got := s.Elapsed(time.Unix(160, 0)); got != time.Minute {
		t.Errorf("Elapsed() = %v, want 1m", got)
	}
}

func TestState_IdleGap(t *testing.T) {
	s := NewState("s1", ModePower, 1000)

	if got := s.IdleGap(time.Unix(100, 0)); got != 0 {
		t.Errorf("IdleGap() with no messages = %v, want 0", got)
	}

	s.LastSellerAt = time.Unix(100, 0)
	s.LastBuyerAt = time.Unix(130, 0)

	if got := s.IdleGap(time.Unix(175, 0)); got != 45*time.Second {
		t.Errorf("IdleGap() = %v, want 45s", got)
	}
}
