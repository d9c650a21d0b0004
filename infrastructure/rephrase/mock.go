package rephrase

import "context"

// MockProvider is a rewording provider for testing.
type MockProvider struct {
	name string

	// CompleteFunc is called when Complete is invoked.
	CompleteFunc func(ctx context.Context, req Request) (string, error)

	// AvailableFunc is called when Available is invoked.
	AvailableFunc func(ctx context.Context) bool
}

// NewMockProvider creates a mock provider with default implementations.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name: name,
		CompleteFunc: func(_ context.Context, req Request) (string, error) {
			return req.Prompt, nil
		},
		AvailableFunc: func(context.Context) bool { return true },
	}
}

// Name returns the provider identifier.
func (m *MockProvider) Name() string { return m.name }

// Complete calls CompleteFunc.
func (m *MockProvider) Complete(ctx context.Context, req Request) (string, error) {
	return m.CompleteFunc(ctx, req)
}

// Available calls AvailableFunc.
func (m *MockProvider) Available(ctx context.Context) bool {
	return m.AvailableFunc(ctx)
}

var _ Provider = (*MockProvider)(nil)
