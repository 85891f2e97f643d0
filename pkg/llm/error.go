package llm

import "errors"

// ErrGeneration is returned when the underlying model call fails, including
// timeouts. The pipeline recovers it locally — it is converted to an inline
// diagnostic in the returned answer and never propagates to API callers.
var ErrGeneration = errors.New("generation failed")
