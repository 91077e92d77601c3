package embedding

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifies provider failures so callers can decide
// between retrying, degrading and aborting.
type FailureKind string

const (
	FailureRateLimited     FailureKind = "rate_limited"
	FailureAuth            FailureKind = "auth"
	FailureModelNotFound   FailureKind = "model_not_found"
	FailureContentFiltered FailureKind = "content_filtered"
	FailureContextTooLong  FailureKind = "context_too_long"
	FailureTransient       FailureKind = "transient"
)

// ProviderError wraps a provider failure with its classification.
type ProviderError struct {
	Kind FailureKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRetryable reports whether the failure is worth retrying later.
// Auth, model-not-found and context-too-long failures will not resolve
// on their own.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Kind {
	case FailureRateLimited, FailureTransient:
		return true
	default:
		return false
	}
}

// Provider produces fixed-dimension embedding vectors for raw text.
// EmbedBatch returns one vector per input text, in input order.
type Provider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
