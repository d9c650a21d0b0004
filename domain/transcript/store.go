package transcript

import (
	"context"
	"errors"
)

// Store errors shared by all persistence adapters.
var (
	// ErrInvalidSessionID indicates an empty or malformed session ID.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrInvalidRating indicates a survey rating outside the 1-7 scale.
	ErrInvalidRating = errors.New("rating outside 1-7 scale")

	// ErrStoreClosed indicates a write against a closed store.
	ErrStoreClosed = errors.New("store closed")
)

// Store persists transcript rows. Implementations append one row per
// message; rows are never rewritten.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// OutcomeStore persists the per-session outcome record.
type OutcomeStore interface {
	RecordOutcome(ctx context.Context, outcome Outcome) error
}

// SurveyStore persists submitted surveys.
type SurveyStore interface {
	RecordSurvey(ctx context.Context, survey Survey) error
}
