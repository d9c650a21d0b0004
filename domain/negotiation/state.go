package negotiation

import "time"

// SessionState is the lifecycle position of a negotiation session.
type SessionState string

const (
	StateIdle          SessionState = "idle"           // Created, waiting for the start action
	StateNegotiating   SessionState = "negotiating"    // Live exchange of offers
	StateClosedDeal    SessionState = "closed_deal"    // Terminal: deal reached
	StateClosedDecline SessionState = "closed_decline" // Terminal: declined or timed out
)

// IsTerminal returns true for the absorbing closed states.
func (s SessionState) IsTerminal() bool {
	return s == StateClosedDeal || s == StateClosedDecline
}

// IsValid returns true if the state is a recognized lifecycle state.
func (s SessionState) IsValid() bool {
	switch s {
	case StateIdle, StateNegotiating, StateClosedDeal, StateClosedDecline:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state.
func (s SessionState) String() string {
	return string(s)
}

// AllSessionStates returns all lifecycle states.
func AllSessionStates() []SessionState {
	return []SessionState{StateIdle, StateNegotiating, StateClosedDeal, StateClosedDecline}
}

// State is the mutable negotiation state of one session. It is owned by the
// session orchestrator and mutated only through engine and session calls;
// there is no ambient global state.
type State struct {
	SessionID string       `json:"session_id"`
	Mode      Mode         `json:"mode"`
	Lifecycle SessionState `json:"lifecycle"`

	// RoundIndex counts buyer messages that carried a parsable offer.
	RoundIndex int `json:"round_index"`

	// CurrentOffer is the seller's standing offer. It never increases once
	// negotiation starts, except for the single list-price match reset.
	CurrentOffer int `json:"current_offer"`

	// BestBuyerOffer is the running maximum of parsed buyer offers; zero
	// until the first numeric offer arrives.
	BestBuyerOffer int `json:"best_buyer_offer"`

	// LowballStreak counts consecutive rounds of lowball offers and widens
	// the re-anchor escalation.
	LowballStreak int `json:"lowball_streak"`

	// BotTurns counts seller messages, bounded by the safety-net cap.
	BotTurns int `json:"bot_turns"`

	DealReached bool      `json:"deal_reached"`
	FinalPrice  int       `json:"final_price"`
	EndedBy     EndReason `json:"ended_by,omitempty"`

	StartTime    time.Time `json:"start_time,omitempty"`
	EndTime      time.Time `json:"end_time,omitempty"`
	LastSellerAt time.Time `json:"last_seller_at,omitempty"`
	LastBuyerAt  time.Time `json:"last_buyer_at,omitempty"`

	// PressureStage tracks which timed power-mode interjections have been
	// sent (0 = none), guaranteeing at-most-once delivery per mark.
	PressureStage int `json:"pressure_stage"`
}

// NewState creates the state for a fresh session at the list price.
func NewState(sessionID string, mode Mode, listPrice int) *State {
	return &State{
		SessionID:    sessionID,
		Mode:         mode,
		Lifecycle:    StateIdle,
		CurrentOffer: listPrice,
	}
}

// Start anchors the deadline clock and moves the session live.
func (s *State) Start(now time.Time) {
	s.Lifecycle = StateNegotiating
	s.StartTime = now
}

// RecordBuyerOffer advances the round counter and the running best offer.
// Only parsable numeric offers count as rounds.
func (s *State) RecordBuyerOffer(offer int) {
	s.RoundIndex++
	if offer > s.BestBuyerOffer {
		s.BestBuyerOffer = offer
	}
}

// Close moves the session into a terminal state exactly once. Later calls
// are no-ops, keeping the outcome idempotent across overlapping
// termination paths.
func (s *State) Close(reason EndReason, finalPrice int, now time.Time) bool {
	if s.Lifecycle.IsTerminal() {
		return false
	}
	s.EndedBy = reason
	s.EndTime = now
	if reason.IsDeal() {
		s.Lifecycle = StateClosedDeal
		s.DealReached = true
		s.FinalPrice = finalPrice
	} else {
		s.Lifecycle = StateClosedDecline
		s.FinalPrice = 0
	}
	return true
}

// Elapsed returns the negotiation time spent at the given instant.
func (s *State) Elapsed(now time.Time) time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return now.Sub(s.StartTime)
}

// IdleGap returns how long neither party has said anything.
func (s *State) IdleGap(now time.Time) time.Duration {
	last := s.LastSellerAt
	if s.LastBuyerAt.After(last) {
		last = s.LastBuyerAt
	}
	if last.IsZero() {
		return 0
	}
	return now.Sub(last)
}
