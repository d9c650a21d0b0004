// Package negotiation provides the core domain model for the seller-side
// price negotiation engine.
package negotiation

// Mode is the experimental condition the seller persona negotiates in.
// It is fixed for the lifetime of a session.
type Mode string

const (
	// ModeNeutral is the friendly, matter-of-fact seller persona.
	ModeNeutral Mode = "neutral"

	// ModePower is the dominant seller persona: larger gaps, slower
	// concessions, timed pressure interjections.
	ModePower Mode = "power"
)

// IsValid returns true if the mode is a recognized condition.
func (m Mode) IsValid() bool {
	return m == ModeNeutral || m == ModePower
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a string to a Mode, falling back to ModeNeutral for
// unrecognized input. Condition selection is forgiving: an experiment link
// with a bad query parameter still runs, in the neutral arm.
func ParseMode(s string) Mode {
	if Mode(s) == ModePower {
		return ModePower
	}
	return ModeNeutral
}

// AllModes returns all experimental conditions.
func AllModes() []Mode {
	return []Mode{ModeNeutral, ModePower}
}
