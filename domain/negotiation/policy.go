package negotiation

import (
	"fmt"
	"time"
)

// ModeParams tunes concession aggressiveness per experimental condition.
type ModeParams struct {
	// EarlyGaps is the mandatory gap above the buyer's offer in rounds 1-3.
	EarlyGaps [3]int `yaml:"early_gaps"`

	// LateStep bounds a single concession step in round 4 and later.
	LateStep int `yaml:"late_step"`

	// MidPull is the weight toward the buyer's offer when computing the
	// weighted midpoint (lower pulls less, i.e. concedes more slowly).
	MidPull float64 `yaml:"mid_pull"`

	// LateMinGap is the minimum gap kept above a buyer offer that already
	// reached the floor band.
	LateMinGap int `yaml:"late_min_gap"`

	// MidLowMinGap is the minimum gap kept above a buyer offer below the
	// floor band but above the lowball tiers.
	MidLowMinGap int `yaml:"mid_low_min_gap"`

	// NearCloseGap is the remaining gap under which the engine flags a
	// closing line instead of a bare counter.
	NearCloseGap int `yaml:"near_close_gap"`
}

// LowballTier re-anchors one band of severely low offers.
type LowballTier struct {
	// Max is the inclusive upper bound of the band.
	Max int `yaml:"max"`

	// Anchor is the base counter the tier re-anchors at.
	Anchor int `yaml:"anchor"`

	// MinGap is the minimum distance kept above the buyer's number.
	MinGap int `yaml:"min_gap"`

	// EscalationBase and EscalationCap bound the per-streak discount off
	// the anchor when the buyer repeats lowballs in consecutive rounds.
	EscalationBase int `yaml:"escalation_base"`
	EscalationCap  int `yaml:"escalation_cap"`
}

// Policy holds every numeric constant of the negotiation. One policy value
// unifies the diverging constants of the source script variants.
type Policy struct {
	// Item is the label the outcome log records.
	Item string `yaml:"item"`

	// ListPrice is the public anchor.
	ListPrice int `yaml:"list_price"`

	// ReservationPrice is the hidden floor. It must never appear in any
	// generated text.
	ReservationPrice int `yaml:"reservation_price"`

	// SubFloorMin is the absolute sub-floor the rare late concession may
	// reach; no offer is ever produced below it.
	SubFloorMin int `yaml:"sub_floor_min"`

	// SubFloorProbability gates the rare concession (0 disables it).
	SubFloorProbability float64 `yaml:"sub_floor_probability"`

	// SubFloorMinRounds is the minimum round index before the concession
	// becomes reachable.
	SubFloorMinRounds int `yaml:"sub_floor_min_rounds"`

	// SubFloorBuyerMin is the minimum buyer offer for the concession.
	SubFloorBuyerMin int `yaml:"sub_floor_buyer_min"`

	// SubFloorAfter is the fraction of the deadline that must have elapsed.
	SubFloorAfter float64 `yaml:"sub_floor_after"`

	// ListDriftPerRound drifts the early-round ceiling down from list.
	ListDriftPerRound int `yaml:"list_drift_per_round"`

	// MaxRounds caps the number of buyer messages with a parsable offer.
	MaxRounds int `yaml:"max_rounds"`

	// MaxBotTurns is the technical safety net on seller turns.
	MaxBotTurns int `yaml:"max_bot_turns"`

	// Deadline is the wall-clock negotiation limit.
	Deadline time.Duration `yaml:"deadline"`

	// PressureMarks are the elapsed times at which power mode fires its
	// timed interjections, each at most once, in order.
	PressureMarks []time.Duration `yaml:"pressure_marks"`

	// PauseNudgeAfter is the idle gap after which power mode interjects.
	PauseNudgeAfter time.Duration `yaml:"pause_nudge_after"`

	// Tiers are the lowball bands, ascending by Max.
	Tiers []LowballTier `yaml:"tiers"`

	// Neutral and Power are the per-condition concession parameters.
	Neutral ModeParams `yaml:"neutral"`
	Power   ModeParams `yaml:"power"`
}

// DefaultPolicy returns the canonical experiment parameters: a 1000 list
// price, a hidden 900 floor, a 15 minute deadline.
func DefaultPolicy() Policy {
	return Policy{
		Item:                "iPad (new, sealed)",
		ListPrice:           1000,
		ReservationPrice:    900,
		SubFloorMin:         895,
		SubFloorProbability: 0.08,
		SubFloorMinRounds:   8,
		SubFloorBuyerMin:    885,
		SubFloorAfter:       0.8,
		ListDriftPerRound:   10,
		MaxRounds:           12,
		MaxBotTurns:         36,
		Deadline:            15 * time.Minute,
		PressureMarks:       []time.Duration{5 * time.Minute, 10 * time.Minute, 13 * time.Minute},
		PauseNudgeAfter:     40 * time.Second,
		Tiers: []LowballTier{
			{Max: 400, Anchor: 975, MinGap: 180, EscalationBase: 15, EscalationCap: 45},
			{Max: 500, Anchor: 965, MinGap: 160, EscalationBase: 10, EscalationCap: 40},
			{Max: 600, Anchor: 955, MinGap: 120, EscalationBase: 10, EscalationCap: 35},
		},
		Neutral: ModeParams{
			EarlyGaps:    [3]int{60, 40, 30},
			LateStep:     20,
			MidPull:      0.45,
			LateMinGap:   20,
			MidLowMinGap: 50,
			NearCloseGap: 10,
		},
		Power: ModeParams{
			EarlyGaps:    [3]int{80, 60, 40},
			LateStep:     10,
			MidPull:      0.25,
			LateMinGap:   40,
			MidLowMinGap: 80,
			NearCloseGap: 15,
		},
	}
}

// Params returns the concession parameters for the given mode.
func (p Policy) Params(mode Mode) ModeParams {
	if mode == ModePower {
		return p.Power
	}
	return p.Neutral
}

// TierFor returns the lowball tier covering the offer, or -1 when the
// offer is above every band.
func (p Policy) TierFor(offer int) int {
	for i, tier := range p.Tiers {
		if offer <= tier.Max {
			return i
		}
	}
	return -1
}

// LowballMax returns the upper bound of the highest lowball band, or 0
// when no tiers are configured.
func (p Policy) LowballMax() int {
	if len(p.Tiers) == 0 {
		return 0
	}
	return p.Tiers[len(p.Tiers)-1].Max
}

// Validate checks the policy for internal consistency.
func (p Policy) Validate() error {
	if p.ListPrice <= 0 {
		return fmt.Errorf("%w: list price must be positive", ErrInvalidPolicy)
	}
	if p.ReservationPrice <= 0 || p.ReservationPrice > p.ListPrice {
		return fmt.Errorf("%w: reservation price must be in (0, list price]", ErrInvalidPolicy)
	}
	if p.SubFloorMin > p.ReservationPrice {
		return fmt.Errorf("%w: sub-floor above reservation price", ErrInvalidPolicy)
	}
	if p.SubFloorProbability < 0 || p.SubFloorProbability > 1 {
		return fmt.Errorf("%w: sub-floor probability outside [0,1]", ErrInvalidPolicy)
	}
	if p.MaxRounds <= 0 || p.MaxBotTurns <= 0 {
		return fmt.Errorf("%w: turn caps must be positive", ErrInvalidPolicy)
	}
	if p.Deadline <= 0 {
		return fmt.Errorf("%w: deadline must be positive", ErrInvalidPolicy)
	}
	last := 0
	for i, tier := range p.Tiers {
		if tier.Max <= last {
			return fmt.Errorf("%w: tiers must ascend by max", ErrInvalidPolicy)
		}
		if tier.Max >= p.ReservationPrice {
			return fmt.Errorf("%w: tier %d overlaps the floor", ErrInvalidPolicy, i)
		}
		last = tier.Max
	}
	return nil
}
