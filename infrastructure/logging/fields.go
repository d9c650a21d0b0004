package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for negotiation logging.

// SessionID adds a session ID field.
func SessionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("session_id", id)
	}
}

// Mode adds the experimental condition field.
func Mode(m negotiation.Mode) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("mode", string(m))
	}
}

// Round adds the buyer round index.
func Round(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("round", n)
	}
}

// Offer adds the seller's standing offer.
func Offer(amount int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("offer", amount)
	}
}

// BuyerOffer adds the parsed buyer offer.
func BuyerOffer(amount int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("buyer_offer", amount)
	}
}

// Phase adds the pricing phase that produced a counter.
func Phase(p negotiation.Phase) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("phase", string(p))
	}
}

// Lifecycle adds the session lifecycle state.
func Lifecycle(s negotiation.SessionState) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("lifecycle", string(s))
	}
}

// EndReason adds the terminal reason field.
func EndReason(r negotiation.EndReason) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("ended_by", string(r))
	}
}

// FinalPrice adds the agreed price field.
func FinalPrice(amount int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("final_price", amount)
	}
}

// Elapsed adds the negotiation time spent, in seconds.
func Elapsed(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("elapsed_s", int64(d.Seconds()))
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
