// Package config provides domain models for the experiment configuration.
package config

import (
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// ExperimentConfig represents the complete configuration of one experiment
// arm: the negotiation policy, persona condition, persistence backends, and
// the optional rephrasing layer.
type ExperimentConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Version is the configuration schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the experiment arm.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Mode is the seller persona condition (neutral, power).
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
	// Seed seeds wording selection. Zero means time-seeded.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Deterministic pins wording selection to the first bank line.
	Deterministic bool `json:"deterministic,omitempty" yaml:"deterministic,omitempty"`

	// Policy overrides the negotiation policy. Nil means the default.
	Policy *negotiation.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
	// Logging contains logging settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Storage contains persistence settings.
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	// Rephrase contains the optional LLM rewording settings.
	Rephrase RephraseConfig `json:"rephrase,omitempty" yaml:"rephrase,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error, fatal).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format (json, console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Storage backends.
const (
	BackendMemory = "memory"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// Backend selects the store implementation (memory, csv, sqlite).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// Dir is the log directory for the csv backend.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
	// DSN is the data source name for the sqlite backend.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// Rephrase providers.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// RephraseConfig contains the optional LLM rewording settings. The
// negotiation runs entirely without it; when enabled, template lines are
// reworded and every generation is checked before use.
type RephraseConfig struct {
	// Enabled turns the rewording layer on.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Provider selects the completion backend (none, gemini, mock).
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	// Model is the provider model name.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// APIKey is the provider credential, usually "${GEMINI_API_KEY}".
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// Timeout bounds one rewording call.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Retry configures retry behavior.
	Retry RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
	// CircuitBreaker configures circuit breaker behavior.
	CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker,omitempty" yaml:"circuit_breaker,omitempty"`
	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// MaxTokens caps the generation length.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum retry attempts.
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	// InitialDelay is the first retry delay.
	InitialDelay Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty"`
}

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// Threshold is consecutive failures before opening.
	Threshold int `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	// Timeout is how long the circuit stays open.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultConfig returns the configuration of the standard experiment arm.
func DefaultConfig() *ExperimentConfig {
	return &ExperimentConfig{
		Name:    "haggle",
		Version: "1.0",
		Mode:    string(negotiation.ModeNeutral),
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{Backend: BackendCSV, Dir: "logs"},
		Rephrase: RephraseConfig{
			Provider:       ProviderNone,
			Timeout:        Duration(4 * time.Second),
			Retry:          RetryConfig{MaxAttempts: 2, InitialDelay: Duration(200 * time.Millisecond)},
			CircuitBreaker: CircuitBreakerConfig{Threshold: 3, Timeout: Duration(30 * time.Second)},
			Temperature:    0.7,
			MaxTokens:      120,
		},
	}
}

// EffectivePolicy returns the configured policy or the default.
func (c *ExperimentConfig) EffectivePolicy() negotiation.Policy {
	if c.Policy != nil {
		return *c.Policy
	}
	return negotiation.DefaultPolicy()
}

// EffectiveMode returns the configured persona condition.
func (c *ExperimentConfig) EffectiveMode() negotiation.Mode {
	return negotiation.ParseMode(c.Mode)
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	// Handle null
	if string(b) == "null" {
		return nil
	}

	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
