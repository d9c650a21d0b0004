// Package rephrase is the optional generative rewording layer. It rewords
// composed seller text without any authority over the numbers: price and
// phase always originate from the offer engine, and rejected or failed
// generations fall back to the templated text.
package rephrase

import (
	"context"
	"errors"
)

// Provider errors.
var (
	ErrProviderNotConfigured = errors.New("rewording provider not configured")
	ErrEmptyCompletion       = errors.New("empty completion")
)

// Request is one rewording request.
type Request struct {
	// SystemPrompt carries the persona and the disclosure rules.
	SystemPrompt string

	// Prompt carries the templated text and the negotiation context.
	Prompt string

	// Temperature controls randomness.
	Temperature float64

	// MaxTokens bounds the generation.
	MaxTokens int
}

// Provider generates a reworded message.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Complete generates a completion for the given request.
	Complete(ctx context.Context, req Request) (string, error)

	// Available checks if the provider can serve requests.
	Available(ctx context.Context) bool
}
