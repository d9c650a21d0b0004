package negotiation

// EndReason tags how a session terminated. Written once into the outcome
// record; the set matches the original experiment logs.
type EndReason string

const (
	EndDealButton      EndReason = "deal_button"               // Buyer clicked accept on the current offer
	EndDealNoPrice     EndReason = "user_says_deal_no_price"   // Explicit acceptance without a number
	EndDealWithPrice   EndReason = "user_says_deal_with_price" // Explicit acceptance at a stated price
	EndTimeFinalized   EndReason = "time_finalization"         // Deadline hit with best offer at/above floor
	EndWalkawayTooLow  EndReason = "walkaway_or_too_low"       // Declined: buyer never reached the floor
	EndRoundCap        EndReason = "round_cap"                 // Declined: numeric-offer cap reached
	EndBotTurnCap      EndReason = "bot_turn_cap"              // Declined: seller turn safety net reached
	EndAborted         EndReason = "aborted"                   // Buyer abandoned the negotiation
)

// IsDeal returns true if the reason represents a closed deal.
func (r EndReason) IsDeal() bool {
	switch r {
	case EndDealButton, EndDealNoPrice, EndDealWithPrice, EndTimeFinalized:
		return true
	default:
		return false
	}
}

// IsValid returns true if the reason is a recognized outcome tag.
func (r EndReason) IsValid() bool {
	switch r {
	case EndDealButton, EndDealNoPrice, EndDealWithPrice, EndTimeFinalized,
		EndWalkawayTooLow, EndRoundCap, EndBotTurnCap, EndAborted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the end reason.
func (r EndReason) String() string {
	return string(r)
}
