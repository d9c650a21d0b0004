package negotiation

import (
	"math"
	"math/rand"
	"time"
)

// Engine computes seller counter-offers. It is deterministic except for the
// rare sub-floor gate, whose randomness is injected so tests can pin it.
type Engine struct {
	policy Policy
	rng    func() float64
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithRandom injects the random gate used by the sub-floor concession.
func WithRandom(rng func() float64) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine creates an offer engine for the given policy.
func NewEngine(policy Policy, opts ...EngineOption) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		policy: policy,
		rng:    rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the engine's price policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Counter evaluates the buyer's latest message against the running state
// and returns the seller's new offer with the phase that produced it.
// hasOffer is false when the buyer text carried no parsable number; such
// turns do not advance the round counter.
//
// Every branch ends clamped to [floor, current offer]; the only permitted
// exception is the immediate match when the buyer offers list price or
// more, and the only place the nominal floor may be undercut is the rare
// sub-floor concession, which is itself bounded by the absolute sub-floor.
func (e *Engine) Counter(s *State, offer int, hasOffer bool, now time.Time) (int, Phase) {
	if !hasOffer {
		return s.CurrentOffer, PhaseNoPrice
	}

	p := e.policy
	params := p.Params(s.Mode)
	current := s.CurrentOffer

	s.RecordBuyerOffer(offer)
	if offer <= p.LowballMax() {
		s.LowballStreak++
	} else {
		s.LowballStreak = 0
	}

	if offer >= p.ListPrice {
		// The one allowed reset: a buyer at or above list is matched at
		// list, even if the standing offer had already dropped below it.
		s.CurrentOffer = p.ListPrice
		return p.ListPrice, PhaseAtOrAboveList
	}

	if tier := p.TierFor(offer); tier >= 0 {
		proposal := e.reanchor(p.Tiers[tier], offer, s.LowballStreak)
		proposal = Bound(RoundToFive(proposal), p.ReservationPrice, current)
		s.CurrentOffer = proposal
		return proposal, lowballPhase(tier)
	}

	var proposal int
	phase := PhaseLateRound

	if s.RoundIndex <= len(params.EarlyGaps) {
		gap := params.EarlyGaps[s.RoundIndex-1]
		proposal = maxInt(offer+gap, p.ListPrice-p.ListDriftPerRound*s.RoundIndex)
		phase = PhaseEarlyRound
	} else if e.allowSubFloor(s, offer, now) {
		proposal = Bound(RoundToFive(maxInt(p.SubFloorMin, offer)), p.SubFloorMin, current)
		s.CurrentOffer = proposal
		return proposal, PhaseSubFloorRare
	} else {
		proposal = e.concede(params, offer, current)
	}

	proposal = Bound(RoundToFive(proposal), p.ReservationPrice, current)
	if offer >= p.ReservationPrice && proposal-offer <= params.NearCloseGap {
		phase = PhaseNearClose
	}
	s.CurrentOffer = proposal
	return proposal, phase
}

// reanchor computes the reject-and-re-anchor counter for a lowball band.
// The anchor drops a little with every consecutive lowball, but the gap
// over the buyer's number is never surrendered.
func (e *Engine) reanchor(tier LowballTier, offer, streak int) int {
	step := minInt(tier.EscalationBase+5*streak, tier.EscalationCap)
	return maxInt(offer+tier.MinGap, tier.Anchor-step)
}

// concede moves toward the weighted midpoint between the buyer's offer
// (floored at the reservation price) and the standing offer, bounded to a
// single mode-specific step and a minimum gap above the buyer.
func (e *Engine) concede(params ModeParams, offer, current int) int {
	floor := e.policy.ReservationPrice
	anchored := maxInt(offer, floor)
	mid := int(math.Round(params.MidPull*float64(anchored) + (1-params.MidPull)*float64(current)))

	// The midpoint may not pull further down than one step per round.
	proposal := maxInt(current-params.LateStep, mid)

	minGap := params.LateMinGap
	if offer < floor {
		minGap = params.MidLowMinGap
	}
	return maxInt(proposal, offer+minGap)
}

// allowSubFloor gates the rare late-phase concession below the nominal
// floor: only near the deadline, deep into the rounds, with the buyer
// already within touching distance, and only on a low-probability draw.
func (e *Engine) allowSubFloor(s *State, offer int, now time.Time) bool {
	p := e.policy
	closeGap := p.Params(s.Mode).NearCloseGap
	if p.SubFloorProbability <= 0 {
		return false
	}
	// Buyer must already sit within touching distance of the floor.
	if offer < p.SubFloorBuyerMin || offer >= p.ReservationPrice+closeGap {
		return false
	}
	if s.RoundIndex < p.SubFloorMinRounds {
		return false
	}
	if s.CurrentOffer-offer > closeGap {
		return false
	}
	late := time.Duration(p.SubFloorAfter * float64(p.Deadline))
	if s.Elapsed(now) < late {
		return false
	}
	return e.rng() < p.SubFloorProbability
}

func lowballPhase(tier int) Phase {
	switch tier {
	case 0:
		return PhaseLowballTier1
	case 1:
		return PhaseLowballTier2
	default:
		return PhaseLowballTier3
	}
}
