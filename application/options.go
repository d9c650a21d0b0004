package application

import (
	"github.com/felixgeelhaar/haggle-go/domain/dialogue"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
)

// Config contains the session wiring.
type Config struct {
	// SessionID is generated when empty.
	SessionID string

	// Mode is the experimental condition, fixed for the session.
	Mode negotiation.Mode

	// Policy holds the price constants; zero value means DefaultPolicy.
	Policy negotiation.Policy

	// Composer renders all seller-facing text.
	Composer dialogue.Composer

	// Entries, Outcomes, and Surveys are optional persistence ports. A nil
	// store skips that log; the in-memory transcript stays authoritative.
	Entries  transcript.Store
	Outcomes transcript.OutcomeStore
	Surveys  transcript.SurveyStore

	// Clock defaults to time.Now.
	Clock Clock

	// EngineOptions are passed through to the offer engine.
	EngineOptions []negotiation.EngineOption
}

// Option configures the session.
type Option func(*Config)

// WithSessionID pins the session ID.
func WithSessionID(id string) Option {
	return func(c *Config) {
		c.SessionID = id
	}
}

// WithPolicy sets the price policy.
func WithPolicy(p negotiation.Policy) Option {
	return func(c *Config) {
		c.Policy = p
	}
}

// WithComposer sets the message composer.
func WithComposer(composer dialogue.Composer) Option {
	return func(c *Config) {
		c.Composer = composer
	}
}

// WithStores sets the persistence ports.
func WithStores(entries transcript.Store, outcomes transcript.OutcomeStore, surveys transcript.SurveyStore) Option {
	return func(c *Config) {
		c.Entries = entries
		c.Outcomes = outcomes
		c.Surveys = surveys
	}
}

// WithClock injects the time source.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithEngineOptions passes options to the offer engine.
func WithEngineOptions(opts ...negotiation.EngineOption) Option {
	return func(c *Config) {
		c.EngineOptions = opts
	}
}
