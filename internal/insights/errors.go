package insights

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned by a Completer when the provider answered
// without any text.
var ErrEmptyCompletion = errors.New("empty completion from model")

// ErrMissingAPIKey is returned by GeminiCompleter when no API key was configured.
var ErrMissingAPIKey = errors.New("no Gemini API key configured")

// ValidationError reports a request that was rejected before any call to the
// completion provider.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failed completion call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
