package ai

import (
	"context"
)

// TextBackend is the deep-NLP extraction interface used by the analyzer's
// enhanced path. Implementations return noun chunks and named entities for
// a block of job posting text.
type TextBackend interface {
	ExtractPhrases(ctx context.Context, text string) (nounChunks []string, entities []string, err error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
