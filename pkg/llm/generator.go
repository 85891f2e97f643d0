// Package llm provides the text generation capability consumed by the
// pipeline. Providers are external model backends behind a common Generator
// interface; the registry in pkg/llm/utils selects one by configured name so
// the pipeline never branches on a model string.
package llm

import "context"

// Generator produces text from an assembled prompt. Calls are synchronous
// and may take seconds; callers bound them with a context deadline and must
// not hold locks across a call.
type Generator interface {
	// Generate returns the model's completion for the prompt. Failures are
	// reported as errors wrapping ErrGeneration.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases any resources held by the generator.
	Close() error
}
