package negotiation

// Phase classifies why a counter-offer was produced. Phases drive wording
// selection only; the numeric policy never depends on them.
type Phase string

const (
	PhaseNoPrice       Phase = "no_price"         // Buyer text carried no parsable number
	PhaseAtOrAboveList Phase = "at_or_above_list" // Buyer met or exceeded the list price
	PhaseLowballTier1  Phase = "lowball_tier1"    // Buyer offer in the lowest band
	PhaseLowballTier2  Phase = "lowball_tier2"    // Buyer offer in the middle lowball band
	PhaseLowballTier3  Phase = "lowball_tier3"    // Buyer offer in the highest lowball band
	PhaseEarlyRound    Phase = "early_round"      // Rounds 1-3, wide mandatory gap
	PhaseLateRound     Phase = "late_round"       // Round 4+, weighted-midpoint concession
	PhaseNearClose     Phase = "near_close"       // Remaining gap small enough to close
	PhaseSubFloorRare  Phase = "sub_floor_rare"   // Rare late concession below the nominal floor
)

// IsLowball returns true for the three lowball rejection tiers.
func (p Phase) IsLowball() bool {
	return p == PhaseLowballTier1 || p == PhaseLowballTier2 || p == PhaseLowballTier3
}

// IsValid returns true if the phase is part of the closed enumeration.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseNoPrice, PhaseAtOrAboveList,
		PhaseLowballTier1, PhaseLowballTier2, PhaseLowballTier3,
		PhaseEarlyRound, PhaseLateRound, PhaseNearClose, PhaseSubFloorRare:
		return true
	default:
		return false
	}
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// AllPhases returns the closed phase enumeration.
func AllPhases() []Phase {
	return []Phase{
		PhaseNoPrice,
		PhaseAtOrAboveList,
		PhaseLowballTier1,
		PhaseLowballTier2,
		PhaseLowballTier3,
		PhaseEarlyRound,
		PhaseLateRound,
		PhaseNearClose,
		PhaseSubFloorRare,
	}
}
