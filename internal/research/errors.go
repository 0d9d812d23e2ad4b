package research

import (
	"errors"
	"fmt"
)

// Configuration errors are surfaced before any provider call is attempted.
var (
	ErrMissingAPIKey = errors.New("groq API key is not configured")
	ErrNoCategory    = errors.New("no news category selected")
)

// RetrievalError means a provider call failed outright; the current turn
// halts and nothing is displayed for it.
type RetrievalError struct {
	Mode Mode
	Err  error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("%s retrieval failed: %v", e.Mode, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// SummarizationError means the completion request failed; retrieved content
// stays visible but no assistant turn is recorded.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed: %v", e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}
