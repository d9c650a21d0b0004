package dialogue

import "github.com/felixgeelhaar/haggle-go/domain/negotiation"

// Prompt carries everything a composer needs to word one seller reply.
// The offer and phase always originate from the offer engine; a composer
// may vary wording freely but must not alter the numbers.
type Prompt struct {
	Mode      negotiation.Mode
	Phase     negotiation.Phase
	Offer     int
	ListPrice int
	Intents   map[Intent]bool
}

// Composer renders seller-facing text. Implementations must never disclose
// the reservation price or the sub-floor in any output.
type Composer interface {
	// Opening is the seller's first message of a session.
	Opening(mode negotiation.Mode) string

	// Reply words a counter-offer (or a request for a concrete number
	// when the phase is no_price).
	Reply(p Prompt) string

	// Accept confirms a closed deal at the given price.
	Accept(mode negotiation.Mode, price int) string

	// Decline ends the negotiation without a deal.
	Decline(mode negotiation.Mode) string

	// FinalOffer is the one last-offer line emitted at the round cap.
	FinalOffer(mode negotiation.Mode, price int) string

	// TimeClose pushes for an immediate close when the deadline forces a
	// finalization at the given price.
	TimeClose(mode negotiation.Mode, price int) string

	// TimedNudge is the power-mode interjection for the given pressure
	// stage (1-based). Empty when the mode has none.
	TimedNudge(mode negotiation.Mode, stage int) string

	// PauseNudge is the power-mode interjection after a long silence.
	// Empty when the mode has none.
	PauseNudge(mode negotiation.Mode) string
}
