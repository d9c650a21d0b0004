package config

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/felixgeelhaar/haggle-go/application"
	domainconfig "github.com/felixgeelhaar/haggle-go/domain/config"
	"github.com/felixgeelhaar/haggle-go/domain/dialogue"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
	"github.com/felixgeelhaar/haggle-go/infrastructure/composer"
	"github.com/felixgeelhaar/haggle-go/infrastructure/logging"
	"github.com/felixgeelhaar/haggle-go/infrastructure/rephrase"
	csvstore "github.com/felixgeelhaar/haggle-go/infrastructure/storage/csv"
	"github.com/felixgeelhaar/haggle-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/haggle-go/infrastructure/storage/sqlite"
)

// Builder turns a validated experiment configuration into wired session
// components.
type Builder struct {
	config *domainconfig.ExperimentConfig
}

// NewBuilder creates a new configuration builder.
func NewBuilder(config *domainconfig.ExperimentConfig) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the built components from configuration.
type BuildResult struct {
	// Mode is the persona condition.
	Mode negotiation.Mode
	// Policy is the effective negotiation policy.
	Policy negotiation.Policy
	// Composer renders all seller-facing text.
	Composer dialogue.Composer
	// Entries, Outcomes, and Surveys are the persistence ports.
	Entries  transcript.Store
	Outcomes transcript.OutcomeStore
	Surveys  transcript.SurveyStore
	// Logging is the resolved logging configuration.
	Logging logging.Config
	// EngineOptions seed the offer engine.
	EngineOptions []negotiation.EngineOption

	closers []io.Closer
}

// SessionOptions returns the application options for the built components.
func (r *BuildResult) SessionOptions() []application.Option {
	return []application.Option{
		application.WithPolicy(r.Policy),
		application.WithComposer(r.Composer),
		application.WithStores(r.Entries, r.Outcomes, r.Surveys),
		application.WithEngineOptions(r.EngineOptions...),
	}
}

// Close releases the resources held by the built components.
func (r *BuildResult) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build builds the session components from configuration.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	cfg := b.config

	result := &BuildResult{
		Mode:   cfg.EffectiveMode(),
		Policy: cfg.EffectivePolicy(),
		Logging: logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		},
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := b.buildComposer(ctx, result, seed); err != nil {
		return nil, err
	}
	if err := b.buildStores(result); err != nil {
		_ = result.Close()
		return nil, err
	}

	if !cfg.Deterministic {
		rng := rand.New(rand.NewSource(seed + 1))
		result.EngineOptions = append(result.EngineOptions, negotiation.WithRandom(rng.Float64))
	}

	return result, nil
}

func (b *Builder) buildComposer(ctx context.Context, result *BuildResult, seed int64) error {
	cfg := b.config

	var inner dialogue.Composer
	if cfg.Deterministic {
		inner = composer.NewDeterministic(result.Policy.ListPrice)
	} else {
		inner = composer.NewRandom(result.Policy.ListPrice, seed)
	}
	result.Composer = inner

	if !cfg.Rephrase.Enabled {
		return nil
	}

	provider, err := b.buildProvider(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}
	if closer, ok := provider.(io.Closer); ok {
		result.closers = append(result.closers, closer)
	}

	result.Composer = rephrase.New(inner, provider, result.Policy, rephrase.Config{
		Timeout:           cfg.Rephrase.Timeout.Duration(),
		RetryMaxAttempts:  cfg.Rephrase.Retry.MaxAttempts,
		RetryInitialDelay: cfg.Rephrase.Retry.InitialDelay.Duration(),
		BreakerThreshold:  cfg.Rephrase.CircuitBreaker.Threshold,
		BreakerTimeout:    cfg.Rephrase.CircuitBreaker.Timeout.Duration(),
		Temperature:       cfg.Rephrase.Temperature,
		MaxTokens:         cfg.Rephrase.MaxTokens,
	})
	return nil
}

func (b *Builder) buildProvider(ctx context.Context) (rephrase.Provider, error) {
	switch b.config.Rephrase.Provider {
	case domainconfig.ProviderGemini:
		return rephrase.NewGemini(ctx, b.config.Rephrase.APIKey, b.config.Rephrase.Model)
	case domainconfig.ProviderMock:
		return rephrase.NewMockProvider("mock"), nil
	default:
		return nil, fmt.Errorf("unknown rephrase provider %q", b.config.Rephrase.Provider)
	}
}

func (b *Builder) buildStores(result *BuildResult) error {
	storage := b.config.Storage

	switch storage.Backend {
	case "", domainconfig.BackendMemory:
		result.Entries = memory.NewTranscriptStore()
		result.Outcomes = memory.NewOutcomeStore()
		result.Surveys = memory.NewSurveyStore()

	case domainconfig.BackendCSV:
		store, err := csvstore.NewStore(storage.Dir)
		if err != nil {
			return fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
		}
		result.Entries = store
		result.Outcomes = store
		result.Surveys = store

	case domainconfig.BackendSQLite:
		store, err := sqlite.NewStore(sqlite.DefaultConfig(), sqlite.WithDSN(storage.DSN))
		if err != nil {
			return fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
		}
		result.closers = append(result.closers, store)
		result.Entries = store
		result.Outcomes = store
		result.Surveys = store

	default:
		return fmt.Errorf("%w: unknown storage backend %q", domainconfig.ErrBuildFailed, storage.Backend)
	}

	return nil
}
