package llmtool

import (
	"errors"
	"fmt"

	llmclient "infralab/internal/llmClient"
)

// ExtractionError means no balanced JSON object could be recovered from the
// model output.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract json: %s: %v", e.Reason, e.Err)
	}
	return "extract json: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaError means the JSON parsed but does not have the expected shape.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Reason)
}

// ExhaustedError is returned once every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Retryable reports whether err is one of the failures a new attempt may fix.
func Retryable(err error) bool {
	var (
		ex *ExtractionError
		sc *SchemaError
	)
	return errors.As(err, &ex) || errors.As(err, &sc) || llmclient.IsTransport(err)
}
