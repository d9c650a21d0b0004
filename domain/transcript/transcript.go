package transcript

import (
	"sync"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Transcript is the in-memory append-only message record of one session.
// It is the authoritative copy; store writes are best effort and never
// block negotiation progress.
type Transcript struct {
	sessionID string
	mode      negotiation.Mode
	entries   []Entry
	mu        sync.RWMutex
}

// New creates a transcript for the given session.
func New(sessionID string, mode negotiation.Mode) *Transcript {
	return &Transcript{
		sessionID: sessionID,
		mode:      mode,
		entries:   make([]Entry, 0),
	}
}

// Append adds an entry, stamping session metadata.
func (t *Transcript) Append(entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry.SessionID = t.sessionID
	entry.Mode = t.mode
	t.entries = append(t.entries, entry)
}

// RecordSeller appends a seller message.
func (t *Transcript) RecordSeller(ts time.Time, text string, offer int) Entry {
	e := NewEntry(ts, t.sessionID, t.mode, RoleSeller, text, offer)
	t.Append(e)
	return e
}

// RecordBuyer appends a buyer message.
func (t *Transcript) RecordBuyer(ts time.Time, text string, offer int) Entry {
	e := NewEntry(ts, t.sessionID, t.mode, RoleBuyer, text, offer)
	t.Append(e)
	return e
}

// Entries returns a copy of all entries in order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Count returns the number of entries.
func (t *Transcript) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// BuyerTurns counts the buyer messages seen so far.
func (t *Transcript) BuyerTurns() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.Role == RoleBuyer {
			n++
		}
	}
	return n
}

// SessionID returns the owning session's ID.
func (t *Transcript) SessionID() string {
	return t.sessionID
}
