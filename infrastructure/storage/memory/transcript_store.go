// Package memory provides in-memory implementations of the storage
// interfaces, used in tests and for ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/haggle-go/domain/transcript"
)

// TranscriptStore is an in-memory implementation of transcript.Store.
type TranscriptStore struct {
	mu      sync.RWMutex
	entries []transcript.Entry
}

// NewTranscriptStore creates an empty in-memory transcript store.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{}
}

// Append stores one transcript row.
func (s *TranscriptStore) Append(ctx context.Context, entry transcript.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of all rows in append order.
func (s *TranscriptStore) Entries() []transcript.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]transcript.Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// BySession returns all rows for one session in append order.
func (s *TranscriptStore) BySession(sessionID string) []transcript.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []transcript.Entry
	for _, e := range s.entries {
		if e.SessionID == sessionID {
			entries = append(entries, e)
		}
	}
	return entries
}

// OutcomeStore is an in-memory implementation of transcript.OutcomeStore.
type OutcomeStore struct {
	mu       sync.RWMutex
	outcomes []transcript.Outcome
}

// NewOutcomeStore creates an empty in-memory outcome store.
func NewOutcomeStore() *OutcomeStore {
	return &OutcomeStore{}
}

// RecordOutcome stores one outcome row.
func (s *OutcomeStore) RecordOutcome(ctx context.Context, outcome transcript.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if outcome.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcome)
	return nil
}

// Outcomes returns a copy of all recorded outcomes.
func (s *OutcomeStore) Outcomes() []transcript.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outcomes := make([]transcript.Outcome, len(s.outcomes))
	copy(outcomes, s.outcomes)
	return outcomes
}

// SurveyStore is an in-memory implementation of transcript.SurveyStore.
type SurveyStore struct {
	mu      sync.RWMutex
	surveys []transcript.Survey
}

// NewSurveyStore creates an empty in-memory survey store.
func NewSurveyStore() *SurveyStore {
	return &SurveyStore{}
}

// RecordSurvey stores one validated survey.
func (s *SurveyStore) RecordSurvey(ctx context.Context, survey transcript.Survey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if survey.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}
	if err := survey.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys = append(s.surveys, survey)
	return nil
}

// Surveys returns a copy of all recorded surveys.
func (s *SurveyStore) Surveys() []transcript.Survey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	surveys := make([]transcript.Survey, len(s.surveys))
	copy(surveys, s.surveys)
	return surveys
}

var (
	_ transcript.Store        = (*TranscriptStore)(nil)
	_ transcript.OutcomeStore = (*OutcomeStore)(nil)
	_ transcript.SurveyStore  = (*SurveyStore)(nil)
)
