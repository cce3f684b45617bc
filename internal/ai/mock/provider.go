package mock

import (
	"context"
	"fmt"

	ai "github.com/aibrandtrack/brandtrack/internal/ai/aierrors"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// MockProvider satisfies models.AIProvider for testing and local development.
type MockProvider struct {
	Name_   string
	AskFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Ask(ctx context.Context, prompt string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, prompt)
	}
	return "", nil
}

// NewMockProvider returns a MockProvider that answers every prompt with a
// canned ranked-list recommendation mentioning a handful of vendors.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		AskFunc: func(_ context.Context, prompt string) (string, error) {
			return fmt.Sprintf(
				"Here are the top options for %q:\n"+
					"1. Acme Corp - the most established choice with broad adoption.\n"+
					"2. Globex - a strong alternative with excellent pricing.\n"+
					"3. Initech - solid for smaller teams.\n"+
					"Acme Corp is generally considered the best overall option.",
				prompt), nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		AskFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		AskFunc: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ai.ErrInferenceTimeout
		},
	}
}

// Compile-time check that MockProvider implements AIProvider.
var _ models.AIProvider = (*MockProvider)(nil)
