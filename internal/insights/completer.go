package insights

import (
	"context"
)

// CompletionRequest is a single text-completion call.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float32
}

// Completer provides an interface for text-completion providers.
// This interface enables mocking the provider in tests.
type Completer interface {
	// Complete sends the prompt and returns the full completion text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
