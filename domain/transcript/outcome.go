package transcript

import (
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Outcome is the single record written when a session terminates.
// FinalPrice is 0 when no deal was reached.
type Outcome struct {
	Timestamp       time.Time             `json:"timestamp"`
	SessionID       string                `json:"session_id"`
	Mode            negotiation.Mode      `json:"mode"`
	Item            string                `json:"item"`
	ListPrice       int                   `json:"list_price"`
	FinalPrice      int                   `json:"final_price"`
	EndedBy         negotiation.EndReason `json:"ended_by"`
	BuyerTurns      int                   `json:"buyer_turns"`
	DurationSeconds int                   `json:"duration_seconds"`
}
