// Package ai defines the capability interface the matching engine uses to
// reach an external text-completion service. The engine never depends on a
// concrete provider; absence of one is represented by the Unavailable null
// object rather than a nil check.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a Completer that has no working backend.
var ErrUnavailable = errors.New("ai completion service is not available")

// CompletionRequest carries one prompt to the external model.
type CompletionRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  float32
}

// Completer produces a text completion for a single request.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Available() bool
}

// Unavailable is the no-op Completer used when no API key is configured.
// It degrades the engine to rule-based-only scoring without ever erroring
// at construction time.
type Unavailable struct{}

func (Unavailable) Complete(context.Context, CompletionRequest) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Available() bool { return false }
