package config

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates experiment configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *ExperimentConfig) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validateMode(config)
	v.validatePolicy(config)
	v.validateStorage(config)
	v.validateRephrase(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *ExperimentConfig) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validateMode(config *ExperimentConfig) {
	if config.Mode == "" {
		return
	}
	if !negotiation.Mode(config.Mode).IsValid() {
		v.addError("mode", fmt.Sprintf("invalid mode: %s", config.Mode))
	}
}

func (v *Validator) validatePolicy(config *ExperimentConfig) {
	if config.Policy == nil {
		return
	}
	if err := config.Policy.Validate(); err != nil {
		v.addError("policy", err.Error())
	}
}

func (v *Validator) validateStorage(config *ExperimentConfig) {
	switch config.Storage.Backend {
	case "", BackendMemory:
	case BackendCSV:
		if config.Storage.Dir == "" {
			v.addError("storage.dir", "csv backend requires a directory")
		}
	case BackendSQLite:
		if config.Storage.DSN == "" {
			v.addError("storage.dsn", "sqlite backend requires a DSN")
		}
	default:
		v.addError("storage.backend", fmt.Sprintf("invalid backend: %s", config.Storage.Backend))
	}
}

func (v *Validator) validateRephrase(config *ExperimentConfig) {
	r := config.Rephrase

	switch r.Provider {
	case "", ProviderNone, ProviderGemini, ProviderMock:
	default:
		v.addError("rephrase.provider", fmt.Sprintf("invalid provider: %s", r.Provider))
	}

	if r.Enabled {
		if r.Provider == "" || r.Provider == ProviderNone {
			v.addError("rephrase.provider", "a provider is required when rephrase is enabled")
		}
		if r.Provider == ProviderGemini && r.APIKey == "" {
			v.addError("rephrase.api_key", "gemini provider requires an API key")
		}
	}

	if r.Timeout < 0 {
		v.addError("rephrase.timeout", "timeout must be non-negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		v.addError("rephrase.temperature", "temperature must be in [0, 2]")
	}
	if r.Retry.MaxAttempts < 0 {
		v.addError("rephrase.retry.max_attempts", "max_attempts must be non-negative")
	}
	if r.CircuitBreaker.Threshold < 0 {
		v.addError("rephrase.circuit_breaker.threshold", "threshold must be non-negative")
	}
}
