// Package transcript provides the append-only records a negotiation
// session leaves behind: the per-message transcript, the one-shot outcome
// record, and the post-negotiation survey.
package transcript

import (
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// IsValid returns true for a recognized role.
func (r Role) IsValid() bool {
	return r == RoleSeller || r == RoleBuyer
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Entry is one chat message, captured together with the seller offer that
// stood when it was produced.
type Entry struct {
	Timestamp    time.Time        `json:"timestamp"`
	SessionID    string           `json:"session_id"`
	Mode         negotiation.Mode `json:"mode"`
	Role         Role             `json:"role"`
	Text         string           `json:"text"`
	CurrentOffer int              `json:"current_offer"`
}

// NewEntry creates a transcript entry.
func NewEntry(ts time.Time, sessionID string, mode negotiation.Mode, role Role, text string, offer int) Entry {
	return Entry{
		Timestamp:    ts,
		SessionID:    sessionID,
		Mode:         mode,
		Role:         role,
		Text:         text,
		CurrentOffer: offer,
	}
}
