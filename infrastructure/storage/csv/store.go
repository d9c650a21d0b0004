// Package csv persists negotiation records as append-only CSV files: one
// transcript file per session, plus shared outcome and survey files. The
// format matches the original experiment logs so existing analysis
// notebooks keep working.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/transcript"
)

// File names inside the log directory.
const (
	outcomesFile = "outcomes.csv"
	surveyFile   = "survey.csv"
)

var (
	transcriptHeader = []string{"timestamp_utc", "session_id", "condition", "role", "text", "current_offer_eur"}
	outcomeHeader    = []string{"timestamp_utc", "session_id", "condition", "item", "original_price_eur", "final_price_eur", "ended_by", "user_turns", "duration_seconds"}
	surveyHeader     = []string{"timestamp_utc", "session_id", "condition", "final_price_eur", "ended_by", "dominance", "pressure", "fairness", "satisfaction", "trust", "expertise", "recommend", "manipulation_power", "comment"}
)

// ErrDirRequired indicates a store created without a directory.
var ErrDirRequired = errors.New("csv: log directory required")

// Store writes transcript, outcome, and survey rows under one directory.
// Appends are whole-row writes to O_APPEND files, so independent sessions
// can share the outcome and survey files safely.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates the store, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, ErrDirRequired
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csv: create log dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Append writes one transcript row to the session's transcript file.
func (s *Store) Append(ctx context.Context, entry transcript.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	name := filepath.Join(s.dir, "transcript_"+entry.SessionID+".csv")
	return s.appendRow(name, transcriptHeader, []string{
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.SessionID,
		string(entry.Mode),
		string(entry.Role),
		entry.Text,
		strconv.Itoa(entry.CurrentOffer),
	})
}

// RecordOutcome appends one row to the shared outcomes file.
func (s *Store) RecordOutcome(ctx context.Context, outcome transcript.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if outcome.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	name := filepath.Join(s.dir, outcomesFile)
	return s.appendRow(name, outcomeHeader, []string{
		outcome.Timestamp.UTC().Format(time.RFC3339),
		outcome.SessionID,
		string(outcome.Mode),
		outcome.Item,
		strconv.Itoa(outcome.ListPrice),
		strconv.Itoa(outcome.FinalPrice),
		string(outcome.EndedBy),
		strconv.Itoa(outcome.BuyerTurns),
		strconv.Itoa(outcome.DurationSeconds),
	})
}

// RecordSurvey appends one row to the shared survey file.
func (s *Store) RecordSurvey(ctx context.Context, survey transcript.Survey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if survey.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}
	if err := survey.Validate(); err != nil {
		return err
	}

	name := filepath.Join(s.dir, surveyFile)
	return s.appendRow(name, surveyHeader, []string{
		survey.Timestamp.UTC().Format(time.RFC3339),
		survey.SessionID,
		string(survey.Mode),
		strconv.Itoa(survey.FinalPrice),
		string(survey.EndedBy),
		strconv.Itoa(survey.Ratings.Dominance),
		strconv.Itoa(survey.Ratings.Pressure),
		strconv.Itoa(survey.Ratings.Fairness),
		strconv.Itoa(survey.Ratings.Satisfaction),
		strconv.Itoa(survey.Ratings.Trust),
		strconv.Itoa(survey.Ratings.Expertise),
		strconv.Itoa(survey.Ratings.Recommend),
		strconv.Itoa(survey.Ratings.ManipulationPower),
		survey.Comment,
	})
}

// appendRow opens the file in append mode, writes the header on first
// creation, and appends one record.
func (s *Store) appendRow(name string, header, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csv: open %s: %w", filepath.Base(name), err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csv: stat %s: %w", filepath.Base(name), err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("csv: write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

var (
	_ transcript.Store        = (*Store)(nil)
	_ transcript.OutcomeStore = (*Store)(nil)
	_ transcript.SurveyStore  = (*Store)(nil)
)
