package analysis

import "fmt"

// ModelError wraps backend failures: network, auth, quota. Not the caller's
// fault; the HTTP boundary surfaces it as a generic retryable failure and
// keeps the underlying message in the logs.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string { return fmt.Sprintf("model invocation failed: %v", e.Err) }
func (e *ModelError) Unwrap() error { return e.Err }

// ParseError means the model answered but the answer could not be turned into
// a schema-conformant record. Raw keeps the unsanitized model text for
// server-side debugging; it is never sent to clients.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("model response unusable: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError rejects bad caller input before any model call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
