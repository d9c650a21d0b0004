package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
)

// Store is a SQLite-backed implementation of the transcript, outcome, and
// survey store interfaces. One store handles all three record kinds so a
// single database file holds a complete experiment.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store with the given configuration.
func NewStore(cfg Config, opts ...Option) (*Store, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	// Auto-migrate if enabled
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewStoreFromDB creates a store from an existing database connection.
func NewStoreFromDB(db *sql.DB) (*Store, error) {
	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

// migrate creates the tables if they don't exist. Outcomes and surveys are
// unique per session, matching the write-once rule enforced upstream.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			role TEXT NOT NULL,
			text TEXT NOT NULL,
			current_offer INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id);

		CREATE TABLE IF NOT EXISTS outcomes (
			session_id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			mode TEXT NOT NULL,
			item TEXT NOT NULL,
			list_price INTEGER NOT NULL,
			final_price INTEGER NOT NULL,
			ended_by TEXT NOT NULL,
			buyer_turns INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS surveys (
			session_id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			mode TEXT NOT NULL,
			final_price INTEGER NOT NULL,
			ended_by TEXT NOT NULL,
			dominance INTEGER NOT NULL,
			pressure INTEGER NOT NULL,
			fairness INTEGER NOT NULL,
			satisfaction INTEGER NOT NULL,
			trust INTEGER NOT NULL,
			expertise INTEGER NOT NULL,
			recommend INTEGER NOT NULL,
			manipulation_power INTEGER NOT NULL,
			comment TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}

// Append persists one transcript row.
func (s *Store) Append(ctx context.Context, entry transcript.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (timestamp, session_id, mode, role, text, current_offer)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Unix(), entry.SessionID, string(entry.Mode),
		string(entry.Role), entry.Text, entry.CurrentOffer,
	)
	return err
}

// BySession returns all transcript rows for one session in append order.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]transcript.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, session_id, mode, role, text, current_offer
		 FROM transcripts WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []transcript.Entry
	for rows.Next() {
		var (
			e  transcript.Entry
			ts int64
		)
		var mode, role string
		if err := rows.Scan(&ts, &e.SessionID, &mode, &role, &e.Text, &e.CurrentOffer); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		e.Mode = negotiation.Mode(mode)
		e.Role = transcript.Role(role)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordOutcome persists the outcome row for a session. A second write for
// the same session fails on the primary key.
func (s *Store) RecordOutcome(ctx context.Context, outcome transcript.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if outcome.SessionID == "" {
		return transcript.ErrInvalidSessionID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (session_id, timestamp, mode, item, list_price, final_price, ended_by, buyer_turns, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.SessionID, outcome.Timestamp.UTC().Unix(), string(outcome.Mode),
		outcome.Item, outcome.ListPrice, outcome.FinalPrice,
		string(outcome.EndedBy), outcome.BuyerTurns, outcome.DurationSeconds,
	)
	return err
}

// Outcomes returns all recorded outcomes ordered by timestamp.
func (s *Store) Outcomes(ctx context.Context) ([]transcript.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, timestamp, mode, item, list_price, final_price, ended_by, buyer_turns, duration_seconds
		 FROM outcomes ORDER BY timestamp`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var outcomes []transcript.Outcome
	for rows.Next() {
		var (
			o  transcript.Outcome
			ts int64
		)
		var mode, endedBy string
		if err := rows.Scan(&o.SessionID, &ts, &mode, &o.Item, &o.ListPrice, &o.FinalPrice, &endedBy, &o.BuyerTurns, &o.DurationSeconds); err != nil {
			return nil, err
		}
		o.Timestamp = time.Unix(ts, 0).UTC()
		o.Mode = negotiation.Mode(mode)
		o.EndedBy = negotiation.EndReason(endedBy)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// RecordSurvey persists the validated survey for a session. A second write
// for the same session fails on the primary key.
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

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO surveys (session_id, timestamp, mode, final_price, ended_by,
			dominance, pressure, fairness, satisfaction, trust, expertise, recommend, manipulation_power, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		survey.SessionID, survey.Timestamp.UTC().Unix(), string(survey.Mode),
		survey.FinalPrice, string(survey.EndedBy),
		survey.Ratings.Dominance, survey.Ratings.Pressure, survey.Ratings.Fairness,
		survey.Ratings.Satisfaction, survey.Ratings.Trust, survey.Ratings.Expertise,
		survey.Ratings.Recommend, survey.Ratings.ManipulationPower, survey.Comment,
	)
	return err
}

// Surveys returns all recorded surveys ordered by timestamp.
func (s *Store) Surveys(ctx context.Context) ([]transcript.Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, timestamp, mode, final_price, ended_by,
			dominance, pressure, fairness, satisfaction, trust, expertise, recommend, manipulation_power, comment
		 FROM surveys ORDER BY timestamp`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var surveys []transcript.Survey
	for rows.Next() {
		var (
			sv transcript.Survey
			ts int64
		)
		var mode, endedBy string
		if err := rows.Scan(&sv.SessionID, &ts, &mode, &sv.FinalPrice, &endedBy,
			&sv.Ratings.Dominance, &sv.Ratings.Pressure, &sv.Ratings.Fairness,
			&sv.Ratings.Satisfaction, &sv.Ratings.Trust, &sv.Ratings.Expertise,
			&sv.Ratings.Recommend, &sv.Ratings.ManipulationPower, &sv.Comment); err != nil {
			return nil, err
		}
		sv.Timestamp = time.Unix(ts, 0).UTC()
		sv.Mode = negotiation.Mode(mode)
		sv.EndedBy = negotiation.EndReason(endedBy)
		surveys = append(surveys, sv)
	}
	return surveys, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

var (
	_ transcript.Store        = (*Store)(nil)
	_ transcript.OutcomeStore = (*Store)(nil)
	_ transcript.SurveyStore  = (*Store)(nil)
)
